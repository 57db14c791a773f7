package generator

import (
	"strings"

	"github.com/LJTian/MarketCards/internal/processor"
)

const (
	// FallbackQuestion 模型输出无法识别时使用的标题
	FallbackQuestion = "**Prediction Market Question:**"
	// FailedQuestion 重试耗尽后使用的标题
	FailedQuestion = "[Gemini failed]"
)

var questionPrefixes = []string{"Will", "**Question:**"}

// ParseCase 标明模型输出命中了哪条启发式规则
type ParseCase int

const (
	// ParsedQuestion 以问题前缀开头：首行为问题，其余为解释
	ParsedQuestion ParseCase = iota
	// ParsedFallback 未识别：占位标题，整段原文作为解释
	ParsedFallback
)

func (c ParseCase) String() string {
	switch c {
	case ParsedQuestion:
		return "question"
	case ParsedFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// ParseResponse 把模型的自由文本拆成 (问题, 解释)；标题永远非空
func ParseResponse(text string) (processor.Transformed, ParseCase) {
	if !hasQuestionPrefix(text) {
		return processor.Transformed{Question: FallbackQuestion, Explanation: text}, ParsedFallback
	}

	first, rest, _ := strings.Cut(text, "\n")
	return processor.Transformed{
		Question:    strings.TrimSpace(first),
		Explanation: strings.TrimSpace(rest),
	}, ParsedQuestion
}

func hasQuestionPrefix(text string) bool {
	for _, p := range questionPrefixes {
		if strings.HasPrefix(text, p) {
			return true
		}
	}
	return false
}
