package entities

// RawRecord is one question entry as returned by the trivia source, before decoding and shuffling.
type RawRecord struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// AnswerMark is how an answer option is shown once results are revealed.
type AnswerMark string

const (
	MarkNone    AnswerMark = ""        // neither correct nor the wrong pick
	MarkCorrect AnswerMark = "correct" // the correct answer
	MarkWrong   AnswerMark = "wrong"   // selected, but not the correct answer
)

// Question is a ready-to-answer trivia question.
// Everything except the selection is fixed at creation.
type Question struct {
	Prompt         string   `json:"prompt"`
	Category       string   `json:"category,omitempty"`
	Difficulty     string   `json:"difficulty,omitempty"`
	Answers        []string `json:"answers"`
	CorrectAnswer  string   `json:"correct_answer"`
	SelectedAnswer string   `json:"selected_answer,omitempty"`
	Answered       bool     `json:"answered"` // false means the selection is unset
}

// HasAnswer reports whether answer is one of the question's options.
func (q *Question) HasAnswer(answer string) bool {
	for _, a := range q.Answers {
		if a == answer {
			return true
		}
	}
	return false
}

// Select records answer as the current selection, replacing any earlier one.
func (q *Question) Select(answer string) {
	q.SelectedAnswer = answer
	q.Answered = true
}

// IsCorrect reports whether the selection matches the correct answer exactly.
func (q *Question) IsCorrect() bool {
	return q.Answered && q.SelectedAnswer == q.CorrectAnswer
}

// Mark returns how answer should be highlighted when results are shown.
func (q *Question) Mark(answer string) AnswerMark {
	switch {
	case answer == q.CorrectAnswer:
		return MarkCorrect
	case q.Answered && answer == q.SelectedAnswer:
		return MarkWrong
	default:
		return MarkNone
	}
}
