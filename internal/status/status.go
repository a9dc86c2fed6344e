// Package status builds the payload served by the service's status endpoint.
package status

import (
	"context"
	"time"
)

// TimestampLayout is ISO-8601 with a fixed microsecond fraction. Fixed width
// keeps successive UTC values ordered when compared as strings.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// Payload is the status response body.
type Payload struct {
	Message   string `json:"message"`
	Status    string `json:"status"`
	Framework string `json:"framework"`
	Timestamp string `json:"timestamp"`
}

// Identity holds the literal fields reported on every call.
type Identity struct {
	Message   string
	Status    string
	Framework string
}

// Service answers status queries. It is safe for concurrent use.
type Service struct {
	identity Identity
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New constructs a Service reporting identity.
func New(identity Identity, opts ...Option) *Service {
	s := &Service{identity: identity, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Status returns a fresh payload stamped with the current time.
func (s *Service) Status(_ context.Context) Payload {
	return Payload{
		Message:   s.identity.Message,
		Status:    s.identity.Status,
		Framework: s.identity.Framework,
		Timestamp: s.now().UTC().Format(TimestampLayout),
	}
}
