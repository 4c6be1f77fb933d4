package notify

import (
	"fmt"
	"strings"

	"github.com/specvital/spectree/pkg/domain"
)

// EventKind identifies a Notifier callback.
type EventKind string

const (
	EventIgnored     EventKind = "ignored"
	EventStarted     EventKind = "started"
	EventFailed      EventKind = "failed"
	EventFinished    EventKind = "finished"
	EventHookFailed  EventKind = "hookFailed"
	EventGroupFailed EventKind = "groupFailed"
)

// Event is one recorded Notifier call.
type Event struct {
	Kind EventKind
	// ID is zero for EventGroupFailed.
	ID domain.TestID
	// Path is only set for EventGroupFailed.
	Path    []string
	Err     error
	Outcome domain.Outcome
}

// String renders the event as "kind(name)" for compact assertions.
func (e Event) String() string {
	if e.Kind == EventGroupFailed {
		return fmt.Sprintf("%s(%s)", e.Kind, strings.Join(e.Path, domain.PathSeparator))
	}
	return fmt.Sprintf("%s(%s)", e.Kind, e.ID.Name)
}

// Recorder keeps every event in call order. It is not safe for concurrent use.
type Recorder struct {
	Events []Event
}

var _ Notifier = (*Recorder)(nil)

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) TestIgnored(id domain.TestID, reason error) {
	r.Events = append(r.Events, Event{Kind: EventIgnored, ID: id, Err: reason})
}

func (r *Recorder) TestStarted(id domain.TestID) {
	r.Events = append(r.Events, Event{Kind: EventStarted, ID: id})
}

func (r *Recorder) TestFailed(id domain.TestID, cause error) {
	r.Events = append(r.Events, Event{Kind: EventFailed, ID: id, Err: cause})
}

func (r *Recorder) TestFinished(id domain.TestID, outcome domain.Outcome) {
	r.Events = append(r.Events, Event{Kind: EventFinished, ID: id, Outcome: outcome})
}

func (r *Recorder) HookFailed(id domain.TestID, err *domain.HookError) {
	r.Events = append(r.Events, Event{Kind: EventHookFailed, ID: id, Err: err})
}

func (r *Recorder) GroupFailed(path []string, err *domain.HookError) {
	r.Events = append(r.Events, Event{Kind: EventGroupFailed, Path: append([]string(nil), path...), Err: err})
}

// Trace returns the String form of every event.
func (r *Recorder) Trace() []string {
	out := make([]string, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.String()
	}
	return out
}

// Of returns the events reported for id, in order.
func (r *Recorder) Of(id domain.TestID) []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Kind != EventGroupFailed && e.ID.Equal(id) {
			out = append(out, e)
		}
	}
	return out
}

// Started returns the identities passed to TestStarted, in order.
func (r *Recorder) Started() []domain.TestID {
	var out []domain.TestID
	for _, e := range r.Events {
		if e.Kind == EventStarted {
			out = append(out, e.ID)
		}
	}
	return out
}

// Outcomes maps the String form of each finished test to its outcome. Later duplicates win.
func (r *Recorder) Outcomes() map[string]domain.Outcome {
	out := map[string]domain.Outcome{}
	for _, e := range r.Events {
		if e.Kind == EventFinished {
			out[e.ID.String()] = e.Outcome
		}
	}
	return out
}
