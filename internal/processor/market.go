package processor

import "time"

const (
	StatusOpen = "open"
	CreatorID  = "kalshi-generator"

	// 占位的盘口数据，不由任何输入计算
	SeedYesCount    = 50000
	SeedNoCount     = 50000
	SeedTotalVolume = 100000
	SeedProbability = 0.5

	endOffset        = 30 * 24 * time.Hour
	resolutionOffset = 32 * 24 * time.Hour

	// UTC 时间，显式 Z 后缀
	timeLayout = "2006-01-02T15:04:05.000000Z"
)

// Market 一张预测市场卡片，创建后不再修改
type Market struct {
	ID                    string   `json:"id"`
	Title                 string   `json:"title"`
	Description           string   `json:"description"`
	Category              string   `json:"category"`
	Tags                  []string `json:"tags"`
	Status                string   `json:"status"`
	CreatedAt             string   `json:"createdAt"`
	StartTime             string   `json:"startTime"`
	EndTime               string   `json:"endTime"`
	ResolutionTime        string   `json:"resolutionTime"`
	Result                *string  `json:"result"`
	YesCount              int      `json:"yesCount"`
	NoCount               int      `json:"noCount"`
	TotalVolume           int      `json:"totalVolume"`
	CurrentYesProbability float64  `json:"currentYesProbability"`
	CurrentNoProbability  float64  `json:"currentNoProbability"`
	CreatorID             string   `json:"creatorId"`
	ResolutionSource      string   `json:"resolutionSource"`
}

type Event struct {
	Markets []Market `json:"markets"`
}

// Collection 是 /generate 的完整输出：{ eventsData: [ { markets: [...] } ] }
type Collection struct {
	EventsData []Event `json:"eventsData"`
}

// NewCollection 包装为单个 event；markets 为空时输出 []
func NewCollection(markets []Market) Collection {
	if markets == nil {
		markets = []Market{}
	}
	return Collection{EventsData: []Event{{Markets: markets}}}
}

// Markets 返回唯一 event 内的全部卡片
func (c Collection) Markets() []Market {
	if len(c.EventsData) == 0 {
		return nil
	}
	return c.EventsData[0].Markets
}

// RawItem 单条订阅条目，只在一次聚合中存在
type RawItem struct {
	Title   string
	Summary string
	Link    string
}

// Transformed 模型生成的问题与解释
type Transformed struct {
	Question    string
	Explanation string
}
