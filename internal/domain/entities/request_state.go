package entities

// RequestStateKind names the four mutually exclusive UI states.
type RequestStateKind string

const (
	StateIdle      RequestStateKind = "idle"
	StateLoading   RequestStateKind = "loading"
	StateSucceeded RequestStateKind = "succeeded"
	StateFailed    RequestStateKind = "failed"
)

// RequestState is a closed sum type: Idle, Loading, Succeeded or Failed.
// Only the variants in this package implement it.
type RequestState interface {
	Kind() RequestStateKind
	isRequestState()
}

type Idle struct{}

type Loading struct{}

type Succeeded struct {
	Joke string
}

type Failed struct {
	Message string
}

func (Idle) Kind() RequestStateKind      { return StateIdle }
func (Loading) Kind() RequestStateKind   { return StateLoading }
func (Succeeded) Kind() RequestStateKind { return StateSucceeded }
func (Failed) Kind() RequestStateKind    { return StateFailed }

func (Idle) isRequestState()      {}
func (Loading) isRequestState()   {}
func (Succeeded) isRequestState() {}
func (Failed) isRequestState()    {}

// JokeText returns the joke for Succeeded and "" for every other state.
func JokeText(s RequestState) string {
	if v, ok := s.(Succeeded); ok {
		return v.Joke
	}
	return ""
}

// ErrorMessage returns the message for Failed and "" for every other state.
func ErrorMessage(s RequestState) string {
	if v, ok := s.(Failed); ok {
		return v.Message
	}
	return ""
}
