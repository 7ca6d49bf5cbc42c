package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionQuiz   = "quiz"
	actionAnswer = "ans"
)

// Quiz sub-actions.
const (
	quizStart = "start"
	quizCheck = "check"
	quizReset = "reset"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// answerParams is the payload of an answer button.
type answerParams struct {
	Token    string
	Question int
	Answer   int
}

// parseAnswer extracts token, question and answer indices from an "ans" callback.
func (cd callbackData) parseAnswer() (answerParams, bool) {
	if cd.Action != actionAnswer || len(cd.Params) != 3 {
		return answerParams{}, false
	}

	q, errQ := strconv.Atoi(cd.Params[1])
	a, errA := strconv.Atoi(cd.Params[2])
	if errQ != nil || errA != nil || q < 0 || a < 0 {
		return answerParams{}, false
	}

	return answerParams{Token: cd.Params[0], Question: q, Answer: a}, true
}

// buildAnswerCallback builds callback data for selecting an answer.
func buildAnswerCallback(token string, questionIndex, answerIndex int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{
			token,
			strconv.Itoa(questionIndex),
			strconv.Itoa(answerIndex),
		},
	}.encode()
}

// buildQuizCallback builds callback data for quiz control buttons.
// A non-empty token ties the button to one quiz.
func buildQuizCallback(subAction, token string) string {
	params := []string{subAction}
	if token != "" {
		params = append(params, token)
	}
	return callbackData{
		Action: actionQuiz,
		Params: params,
	}.encode()
}

// parseQuiz extracts the sub-action and the optional quiz token of a "quiz" callback.
func (cd callbackData) parseQuiz() (subAction, token string, ok bool) {
	if cd.Action != actionQuiz || len(cd.Params) == 0 || len(cd.Params) > 2 {
		return "", "", false
	}
	if len(cd.Params) == 2 {
		token = cd.Params[1]
	}
	return cd.Params[0], token, true
}
