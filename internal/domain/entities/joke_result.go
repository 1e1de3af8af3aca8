package entities

import "strings"

type JokeResult struct {
	text string
}

func NewJokeResult(text string) *JokeResult {
	return &JokeResult{
		text: text,
	}
}

func (r *JokeResult) Text() string {
	return r.text
}

func (r *JokeResult) IsEmpty() bool {
	return strings.TrimSpace(r.text) == ""
}
