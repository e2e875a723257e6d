package aiquiz

import "fmt"

const (
	defaultCount      = 5
	defaultDifficulty = "medium"
	optionsPerDraft   = 4
)

const systemPrompt = `
You write multiple-choice questions for a timed technical quiz taken by teams of three students.

Rules:
1. Every question has exactly 4 options and exactly one correct option.
2. "correctAnswer" is the zero-based index of the correct option.
3. Options are similar in length and structure; the correct one must not stand out.
4. Wrong options are plausible distractors.
5. Code snippets go inside "text", with newlines escaped.
6. Never reveal the answer in the question text.

Reply with pure JSON, no prose and no markdown fences:

[
  {
    "text": "<question>",
    "options": ["...", "...", "...", "..."],
    "correctAnswer": 2,
    "points": 1
  }
]
`

func normalize(req DraftRequest) DraftRequest {
	if req.Count <= 0 {
		req.Count = defaultCount
	}
	if req.Difficulty == "" {
		req.Difficulty = defaultDifficulty
	}
	return req
}

func BuildUserPrompt(req DraftRequest) string {
	req = normalize(req)
	return fmt.Sprintf(
		"Write %d %s questions about %q. Use points 1 for easy, 2 for medium and 3 for hard questions.",
		req.Count, req.Difficulty, req.Topic,
	)
}
