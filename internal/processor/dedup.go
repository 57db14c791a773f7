package processor

import "strings"

// DefaultMaxPerCategory 每个分类最多保留的卡片数
const DefaultMaxPerCategory = 30

// DedupAndCap 按标题（忽略大小写、去首尾空白）去重，先到先得，保持原顺序；
// 收满 max 条即停止扫描
func DedupAndCap(markets []Market, max int) []Market {
	if max <= 0 {
		max = DefaultMaxPerCategory
	}

	out := make([]Market, 0, min(len(markets), max))
	seen := make(map[string]struct{}, len(markets))

	for _, m := range markets {
		key := titleKey(m.Title)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, m)
		if len(out) == max {
			break
		}
	}
	return out
}

func titleKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
