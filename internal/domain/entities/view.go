package entities

// QuizView is the read-only projection of a session handed to the UI.
type QuizView struct {
	ChatID    int64
	Token     string
	Phase     Phase
	Questions []QuestionView
	Score     int
	Total     int
}

// QuestionView is one question as the UI shows it.
type QuestionView struct {
	Number     int // 1-based
	Prompt     string
	Category   string
	Difficulty string
	Answered   bool
	Options    []OptionView
}

// OptionView is one answer option. Mark is set only when results are shown.
type OptionView struct {
	Text     string
	Selected bool
	Mark     AnswerMark
}

// ShortToken is the token prefix the UI embeds in buttons.
func (v QuizView) ShortToken() string {
	return ShortToken(v.Token)
}

// ShortToken truncates an acquisition token to fit into button payloads.
func ShortToken(token string) string {
	const n = 8
	if len(token) <= n {
		return token
	}
	return token[:n]
}

// View builds the read model of the session.
func (s *QuizSession) View() QuizView {
	v := QuizView{
		ChatID: s.ChatID,
		Token:  s.Token,
		Phase:  s.Phase,
		Total:  len(s.Questions),
	}
	if s.Phase == PhaseShowingResults {
		v.Score = s.Score
	}

	showMarks := s.Phase == PhaseShowingResults
	v.Questions = make([]QuestionView, 0, len(s.Questions))
	for i := range s.Questions {
		q := &s.Questions[i]
		qv := QuestionView{
			Number:     i + 1,
			Prompt:     q.Prompt,
			Category:   q.Category,
			Difficulty: q.Difficulty,
			Answered:   q.Answered,
			Options:    make([]OptionView, 0, len(q.Answers)),
		}
		for _, a := range q.Answers {
			ov := OptionView{
				Text:     a,
				Selected: q.Answered && q.SelectedAnswer == a,
			}
			if showMarks {
				ov.Mark = q.Mark(a)
			}
			qv.Options = append(qv.Options, ov)
		}
		v.Questions = append(v.Questions, qv)
	}

	return v
}

// EmptyView is the view of a chat without a session.
func EmptyView(chatID int64) QuizView {
	return QuizView{ChatID: chatID, Phase: PhaseNotStarted}
}
