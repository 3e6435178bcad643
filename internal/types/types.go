package types

import "time"

// UnknownValue is shown for fields the ECS API left empty
const UnknownValue = "unknown"

// Pane identifies the focused region of the dashboard
type Pane int

const (
	PaneServicesList Pane = iota
	PaneServiceDetails
	PaneTasksList
	PaneTaskDetails
	PaneContainersList
	PaneContainerDetails
	PaneHelp
)

// AllPanes lists every pane in declaration order
var AllPanes = []Pane{
	PaneServicesList,
	PaneServiceDetails,
	PaneTasksList,
	PaneTaskDetails,
	PaneContainersList,
	PaneContainerDetails,
	PaneHelp,
}

// String returns the short code shown in the debug segment of the status line
func (p Pane) String() string {
	switch p {
	case PaneServicesList:
		return "sl"
	case PaneServiceDetails:
		return "sd"
	case PaneTasksList:
		return "tl"
	case PaneTaskDetails:
		return "td"
	case PaneContainersList:
		return "cl"
	case PaneContainerDetails:
		return "cd"
	case PaneHelp:
		return "h"
	default:
		return "?"
	}
}

// IsList reports whether the pane shows a selectable list
func (p Pane) IsList() bool {
	return p == PaneServicesList || p == PaneTasksList || p == PaneContainersList
}

// MessageType defines the type of user message
type MessageType int

const (
	MessageTypeInfo MessageType = iota
	MessageTypeError
)

// UserMessage is a transient note shown in the status line
type UserMessage struct {
	Text string
	Type MessageType
	At   time.Time
}

// InfoMsg creates an info user message stamped with now
func InfoMsg(text string, now time.Time) *UserMessage {
	return &UserMessage{Text: text, Type: MessageTypeInfo, At: now}
}

// ErrorMsg creates an error user message stamped with now
func ErrorMsg(text string, now time.Time) *UserMessage {
	return &UserMessage{Text: text, Type: MessageTypeError, At: now}
}

// OlderThan reports whether the message was created more than d before now
func (u *UserMessage) OlderThan(d time.Duration, now time.Time) bool {
	return now.Sub(u.At) > d
}
