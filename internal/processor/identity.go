package processor

import (
	"crypto/md5"
	"encoding/hex"
)

const (
	idPrefix = "market_"
	idHexLen = 8
)

// MarketID 由 title+link 的 MD5 前 8 位生成，只用于展示，不作为去重键
func MarketID(title, link string) string {
	sum := md5.Sum([]byte(title + link))
	return idPrefix + hex.EncodeToString(sum[:])[:idHexLen]
}
