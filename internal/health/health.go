// Package health aggregates dependency checks for readiness probes.
package health

import (
	"context"
	"sync"
	"time"
)

// DefaultTimeout bounds a full readiness evaluation.
const DefaultTimeout = 2 * time.Second

// Checker probes one dependency.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Report is the outcome of a readiness evaluation.
type Report struct {
	Ready  bool              `json:"-"`
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Readiness runs registered checkers concurrently.
type Readiness struct {
	checkers []Checker
	timeout  time.Duration
}

// NewReadiness builds a Readiness over checkers, skipping nil entries.
func NewReadiness(timeout time.Duration, checkers ...Checker) *Readiness {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	r := &Readiness{timeout: timeout}
	for _, c := range checkers {
		if c != nil {
			r.checkers = append(r.checkers, c)
		}
	}
	return r
}

// Evaluate checks every dependency and reports ready only when all pass.
func (r *Readiness) Evaluate(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	report := Report{Ready: true, Status: "ready", Checks: make(map[string]string, len(r.checkers))}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, c := range r.checkers {
		wg.Add(1)
		go func(c Checker) {
			defer wg.Done()
			result := "ok"
			err := c.Check(ctx)
			if err != nil {
				result = err.Error()
			}
			mu.Lock()
			defer mu.Unlock()
			report.Checks[c.Name()] = result
			if err != nil {
				report.Ready = false
				report.Status = "unavailable"
			}
		}(c)
	}
	wg.Wait()
	return report
}
