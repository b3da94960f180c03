// Package domain holds contracts shared by every bounded context.
package domain

type Event interface {
	Type() string
}

type EventDispatcher interface {
	Dispatch(event Event) error
}
