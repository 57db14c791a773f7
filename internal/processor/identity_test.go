package processor

import (
	"regexp"
	"testing"
)

var idPattern = regexp.MustCompile(`^market_[0-9a-f]{8}$`)

func TestMarketIDDeterministicAndDistinct(t *testing.T) {
	a1 := MarketID("Bitcoin hits new high", "https://example.com/a")
	a2 := MarketID("Bitcoin hits new high", "https://example.com/a")
	b := MarketID("Bitcoin hits new high", "https://example.com/b")

	if a1 != a2 {
		t.Fatalf("MarketID not deterministic: %q vs %q", a1, a2)
	}
	if a1 == b {
		t.Fatalf("MarketID should differ for different links: %q", a1)
	}
	if !idPattern.MatchString(a1) {
		t.Fatalf("MarketID format = %q", a1)
	}
}

func TestMarketIDKnownValue(t *testing.T) {
	// md5("") = d41d8cd98f00b204e9800998ecf8427e
	if got := MarketID("", ""); got != "market_d41d8cd9" {
		t.Fatalf("MarketID(\"\", \"\") = %q, want market_d41d8cd9", got)
	}
	// 只拼接不加分隔符，与原有卡片 ID 保持一致
	if MarketID("ab", "c") != MarketID("a", "bc") {
		t.Fatalf("MarketID should hash the plain concatenation")
	}
}
