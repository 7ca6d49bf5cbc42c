package service

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/quizzical-bot/internal/domain/entities"
)

func seededRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestShuffleIsPermutation(t *testing.T) {
	rng := seededRand()
	in := []string{"a", "b", "b", "c", "d"}
	orig := slices.Clone(in)

	for i := 0; i < 100; i++ {
		out := Shuffle(rng, in)
		require.Equal(t, orig, in, "input must not be modified")
		require.ElementsMatch(t, in, out)
	}
}

func TestShuffleEdgeCases(t *testing.T) {
	rng := seededRand()
	require.Empty(t, Shuffle(rng, []int{}))
	require.Equal(t, []int{7}, Shuffle(rng, []int{7}))
}

func TestShuffleUniform(t *testing.T) {
	const trials = 60000
	rng := seededRand()
	in := []string{"a", "b", "c"}

	counts := map[string]int{}
	for i := 0; i < trials; i++ {
		counts[strings.Join(Shuffle(rng, in), "")]++
	}

	require.Len(t, counts, 6)
	expected := trials / 6
	for perm, n := range counts {
		require.InDelta(t, expected, n, float64(expected)*0.05, "permutation %s", perm)
	}
}

func TestBuildDecodesAndShuffles(t *testing.T) {
	b := NewQuizBuilder(HTMLDecoder{}, seededRand())

	records := []entities.RawRecord{
		{
			Category:         "Entertainment: Film",
			Difficulty:       "easy",
			Question:         "Who said &quot;I&#039;ll be back&quot;?",
			CorrectAnswer:    "The Terminator",
			IncorrectAnswers: []string{"Rocky &amp; Adrian", "Rambo", "Predator"},
		},
		{
			Question:         "2 + 2 = ?",
			CorrectAnswer:    "4",
			IncorrectAnswers: []string{"5"},
		},
	}

	qs := b.Build(records)
	require.Len(t, qs, 2)

	first := qs[0]
	require.Equal(t, `Who said "I'll be back"?`, first.Prompt)
	require.Equal(t, "The Terminator", first.CorrectAnswer)
	require.Equal(t, "easy", first.Difficulty)
	require.ElementsMatch(t, []string{"The Terminator", "Rocky & Adrian", "Rambo", "Predator"}, first.Answers)
	require.False(t, first.Answered)
	require.Empty(t, first.SelectedAnswer)

	require.Equal(t, "2 + 2 = ?", qs[1].Prompt)
	require.ElementsMatch(t, []string{"4", "5"}, qs[1].Answers)
}

func TestBuildCorrectAnswerAppearsOnce(t *testing.T) {
	b := NewQuizBuilder(nil, seededRand())

	for i := 0; i < 50; i++ {
		q := b.Build([]entities.RawRecord{{
			Question:         "q",
			CorrectAnswer:    "right",
			IncorrectAnswers: []string{"w1", "w2", "w3"},
		}})[0]

		n := 0
		for _, a := range q.Answers {
			if a == q.CorrectAnswer {
				n++
			}
		}
		require.Equal(t, 1, n)
	}
}

func TestBuildWithoutIncorrectAnswers(t *testing.T) {
	b := NewQuizBuilder(nil, nil)

	qs := b.Build([]entities.RawRecord{{Question: "only one", CorrectAnswer: "yes"}})
	require.Len(t, qs, 1)
	require.Equal(t, []string{"yes"}, qs[0].Answers)
}

func TestBuildMissingFields(t *testing.T) {
	b := NewQuizBuilder(nil, seededRand())

	qs := b.Build([]entities.RawRecord{{IncorrectAnswers: []string{"x"}}})
	require.Len(t, qs, 1)
	require.Empty(t, qs[0].Prompt)
	require.Empty(t, qs[0].CorrectAnswer)
	require.ElementsMatch(t, []string{"", "x"}, qs[0].Answers)
}

func TestBuildEmpty(t *testing.T) {
	require.Empty(t, NewQuizBuilder(nil, nil).Build(nil))
}
