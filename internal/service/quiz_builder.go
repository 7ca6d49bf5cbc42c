package service

import (
	"html"
	"math/rand/v2"
	"sync"

	"github.com/aliskhannn/quizzical-bot/internal/domain/entities"
)

// TextDecoder turns encoded API text into display text.
type TextDecoder interface {
	Decode(s string) string
}

// HTMLDecoder decodes HTML entities such as &quot; and &#039;.
type HTMLDecoder struct{}

func (HTMLDecoder) Decode(s string) string {
	return html.UnescapeString(s)
}

// QuizBuilder turns raw trivia records into shuffled, answerable questions.
// It is safe for concurrent use.
type QuizBuilder struct {
	decoder TextDecoder

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// NewQuizBuilder creates a builder. A nil rng uses a randomly seeded source.
func NewQuizBuilder(decoder TextDecoder, rng *rand.Rand) *QuizBuilder {
	if decoder == nil {
		decoder = HTMLDecoder{}
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &QuizBuilder{
		decoder: decoder,
		rng:     rng,
	}
}

// Build keeps the record order and shuffles the answers of each question.
// Missing fields are carried through as empty text.
func (b *QuizBuilder) Build(records []entities.RawRecord) []entities.Question {
	b.mu.Lock()
	defer b.mu.Unlock()

	questions := make([]entities.Question, 0, len(records))
	for _, r := range records {
		questions = append(questions, b.buildQuestion(r))
	}
	return questions
}

func (b *QuizBuilder) buildQuestion(r entities.RawRecord) entities.Question {
	correct := b.decoder.Decode(r.CorrectAnswer)

	answers := make([]string, 0, 1+len(r.IncorrectAnswers))
	answers = append(answers, correct)
	for _, a := range r.IncorrectAnswers {
		answers = append(answers, b.decoder.Decode(a))
	}

	return entities.Question{
		Prompt:        b.decoder.Decode(r.Question),
		Category:      b.decoder.Decode(r.Category),
		Difficulty:    r.Difficulty,
		Answers:       Shuffle(b.rng, answers),
		CorrectAnswer: correct,
	}
}
