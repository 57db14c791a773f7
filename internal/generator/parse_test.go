package generator

import "testing"

func TestParseResponse(t *testing.T) {
	cases := []struct {
		name     string
		in       string
		question string
		explain  string
		kase     ParseCase
	}{
		{
			name:     "will question with explanation",
			in:       "Will X happen by 2026?\nExplanation paragraph.",
			question: "Will X happen by 2026?",
			explain:  "Explanation paragraph.",
			kase:     ParsedQuestion,
		},
		{
			name:     "markdown question marker",
			in:       "**Question:** Will Y win?  \n\n  Because reasons.\n",
			question: "**Question:** Will Y win?",
			explain:  "Because reasons.",
			kase:     ParsedQuestion,
		},
		{
			name:     "question without line break",
			in:       "Will Z ship in Q3?",
			question: "Will Z ship in Q3?",
			explain:  "",
			kase:     ParsedQuestion,
		},
		{
			name:     "unrecognised text",
			in:       "Some unrelated text",
			question: FallbackQuestion,
			explain:  "Some unrelated text",
			kase:     ParsedFallback,
		},
		{
			name:     "leading whitespace is not a marker",
			in:       "  Will X?\nbody",
			question: FallbackQuestion,
			explain:  "  Will X?\nbody",
			kase:     ParsedFallback,
		},
	}

	for _, c := range cases {
		got, kase := ParseResponse(c.in)
		if kase != c.kase {
			t.Fatalf("%s: case = %v, want %v", c.name, kase, c.kase)
		}
		if got.Question != c.question || got.Explanation != c.explain {
			t.Fatalf("%s: got (%q, %q), want (%q, %q)", c.name, got.Question, got.Explanation, c.question, c.explain)
		}
	}
}

func TestParseCaseString(t *testing.T) {
	if ParsedQuestion.String() != "question" || ParsedFallback.String() != "fallback" {
		t.Fatalf("unexpected ParseCase names")
	}
}
