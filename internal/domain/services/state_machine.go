package services

import (
	"fmt"

	"joke-demo/internal/domain/entities"
)

type EventKind string

const (
	EventUpload        EventKind = "upload"
	EventSubmitNoImage EventKind = "submit_no_image"
	EventSubmit        EventKind = "submit"
	EventResolve       EventKind = "resolve"
	EventReject        EventKind = "reject"
	EventDiscard       EventKind = "discard"
)

var allEvents = []EventKind{EventUpload, EventSubmitNoImage, EventSubmit, EventResolve, EventReject, EventDiscard}

var allStates = []entities.RequestStateKind{
	entities.StateIdle, entities.StateLoading, entities.StateSucceeded, entities.StateFailed,
}

type Event struct {
	Kind EventKind

	// set for EventResolve
	Joke string
}

func UploadEvent() Event        { return Event{Kind: EventUpload} }
func SubmitNoImageEvent() Event { return Event{Kind: EventSubmitNoImage} }
func SubmitEvent() Event        { return Event{Kind: EventSubmit} }
func ResolveEvent(joke string) Event {
	return Event{Kind: EventResolve, Joke: joke}
}
func RejectEvent() Event  { return Event{Kind: EventReject} }
func DiscardEvent() Event { return Event{Kind: EventDiscard} }

type transition func(from entities.RequestState, ev Event) (entities.RequestState, error)

// StateMachine is the complete RequestState transition table. Every
// (state, event) pair has an entry; pairs that cannot happen return
// entities.ErrInvalidTransition and leave the state as it was.
type StateMachine struct {
	table map[entities.RequestStateKind]map[EventKind]transition
}

func NewStateMachine() *StateMachine {
	settled := map[EventKind]transition{
		EventUpload:        to(entities.Idle{}),
		EventSubmitNoImage: to(entities.Failed{Message: entities.MsgNoImage}),
		EventSubmit:        to(entities.Loading{}),
		EventResolve:       invalid,
		EventReject:        invalid,
		EventDiscard:       invalid,
	}

	return &StateMachine{
		table: map[entities.RequestStateKind]map[EventKind]transition{
			entities.StateIdle: settled,
			entities.StateLoading: {
				EventUpload:        stay,
				EventSubmitNoImage: inFlight,
				EventSubmit:        inFlight,
				EventResolve:       resolve,
				EventReject:        to(entities.Failed{Message: entities.MsgGenerationFailed}),
				EventDiscard:       to(entities.Idle{}),
			},
			entities.StateSucceeded: settled,
			entities.StateFailed:    settled,
		},
	}
}

// Apply returns the state that follows from after ev. On error the returned
// state is from.
func (m *StateMachine) Apply(from entities.RequestState, ev Event) (entities.RequestState, error) {
	if from == nil {
		from = entities.Idle{}
	}

	row, ok := m.table[from.Kind()]
	if !ok {
		return from, fmt.Errorf("%w: unknown state %q", entities.ErrInvalidTransition, from.Kind())
	}
	t, ok := row[ev.Kind]
	if !ok {
		return from, fmt.Errorf("%w: unknown event %q", entities.ErrInvalidTransition, ev.Kind)
	}

	return t(from, ev)
}

func to(next entities.RequestState) transition {
	return func(entities.RequestState, Event) (entities.RequestState, error) {
		return next, nil
	}
}

func stay(from entities.RequestState, _ Event) (entities.RequestState, error) {
	return from, nil
}

func inFlight(from entities.RequestState, _ Event) (entities.RequestState, error) {
	return from, entities.ErrRequestInFlight
}

func invalid(from entities.RequestState, ev Event) (entities.RequestState, error) {
	return from, fmt.Errorf("%w: %s while %s", entities.ErrInvalidTransition, ev.Kind, from.Kind())
}

// A success must carry a joke; an empty one settles as a failure.
func resolve(_ entities.RequestState, ev Event) (entities.RequestState, error) {
	if ev.Joke == "" {
		return entities.Failed{Message: entities.MsgGenerationFailed}, nil
	}
	return entities.Succeeded{Joke: ev.Joke}, nil
}
