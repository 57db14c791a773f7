package processor

import "time"

// BuildMarket 组装一张卡片；每个 RawItem 恰好产出一张，不存在拒绝分支
func BuildMarket(t Transformed, category string, tags []string, item RawItem, now time.Time) Market {
	now = now.UTC()
	ts := now.Format(timeLayout)
	if tags == nil {
		tags = []string{}
	}

	return Market{
		ID:                    MarketID(item.Title, item.Link),
		Title:                 t.Question,
		Description:           t.Explanation,
		Category:              category,
		Tags:                  tags,
		Status:                StatusOpen,
		CreatedAt:             ts,
		StartTime:             ts,
		EndTime:               now.Add(endOffset).Format(timeLayout),
		ResolutionTime:        now.Add(resolutionOffset).Format(timeLayout),
		Result:                nil,
		YesCount:              SeedYesCount,
		NoCount:               SeedNoCount,
		TotalVolume:           SeedTotalVolume,
		CurrentYesProbability: SeedProbability,
		CurrentNoProbability:  SeedProbability,
		CreatorID:             CreatorID,
		ResolutionSource:      item.Link,
	}
}
