// Package shared holds domain building blocks used by every aggregate.
package shared

import "time"

// DomainEvent represents something that happened in the domain.
type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
}

// AggregateRoot is the base type for aggregate roots. It collects domain
// events until a caller drains them for dispatch.
type AggregateRoot struct {
	events []DomainEvent
}

// AddEvent records a domain event for later dispatch.
func (a *AggregateRoot) AddEvent(event DomainEvent) {
	a.events = append(a.events, event)
}

// Events returns and clears pending domain events.
func (a *AggregateRoot) Events() []DomainEvent {
	events := a.events
	a.events = nil
	return events
}
