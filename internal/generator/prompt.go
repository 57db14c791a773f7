package generator

const promptDirective = "Convert this news into a YES/NO prediction question with a clear timeframe. " +
	"Then provide a one-paragraph explanation that frames it like a prediction Kalshi would publish.\n\n"

// BuildPrompt 拼接固定指令与标题、摘要，原文不做截断和清洗
func BuildPrompt(title, summary string) string {
	return promptDirective + title + "\n\n" + summary
}
