package quiz

// Unanswered marks a question the group skipped.
const Unanswered = -1

// Grade sums the weight of every question whose answer matches the stored
// option index. Answers beyond the last question are ignored.
func Grade(questions []Question, answers []int) int {
	score := 0
	for i, answer := range answers {
		if i >= len(questions) {
			break
		}
		if answer == Unanswered {
			continue
		}
		if questions[i].CorrectAnswer == answer {
			score += questions[i].Weight()
		}
	}
	return score
}

func Safe(q *Quiz) *SafeQuiz {
	questions := make([]SafeQuestion, len(q.Questions))
	for i, question := range q.Questions {
		questions[i] = SafeQuestion{ID: i, Text: question.Text, Options: question.Options}
	}
	return &SafeQuiz{
		ID:        q.ID,
		Title:     q.Title,
		Questions: questions,
		Settings:  q.Settings,
	}
}
