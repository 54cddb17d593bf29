package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"fitplan/planner-app/internal/domain"
)

// DefaultPickerDebounce is how long the picker waits for the caller to stop
// typing before it fires a search.
const DefaultPickerDebounce = 300 * time.Millisecond

// ExercisePicker is a debounced search-and-select helper over the exercise
// library, used while composing a draft. Each SetQuery call supersedes the
// previous one; results of superseded queries are discarded so only the
// newest query ever reaches the callback. There is no request cancellation
// at the transport layer, so staleness is tracked with a generation counter.
type ExercisePicker struct {
	exercises ExerciseService
	debounce  time.Duration
	onResults func(query string, results []domain.Exercise)
	onError   func(query string, err error)

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
}

// NewExercisePicker creates a picker delivering results to onResults and
// failures to onError (which may be nil).
func NewExercisePicker(exercises ExerciseService, onResults func(string, []domain.Exercise), onError func(string, error)) *ExercisePicker {
	return &ExercisePicker{
		exercises: exercises,
		debounce:  DefaultPickerDebounce,
		onResults: onResults,
		onError:   onError,
	}
}

// SetDebounce overrides the debounce window. Used by tests to avoid
// real 300ms waits.
func (p *ExercisePicker) SetDebounce(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.debounce = d
}

// SetQuery registers the caller's latest input. A blank query resolves to
// an empty result immediately, without a remote call; anything else fires a
// search after the debounce window, unless superseded first.
func (p *ExercisePicker) SetQuery(ctx context.Context, query string) {
	p.mu.Lock()
	p.generation++
	generation := p.generation
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}

	if strings.TrimSpace(query) == "" {
		p.mu.Unlock()
		p.onResults(query, []domain.Exercise{})
		return
	}

	// The search outlives the call that scheduled it. Detach it from the
	// caller's context so a request-scoped cancellation does not kill a
	// debounced search that is still the newest one.
	searchCtx := context.WithoutCancel(ctx)

	p.timer = time.AfterFunc(p.debounce, func() {
		results, err := p.exercises.SearchExercises(searchCtx, query)

		p.mu.Lock()
		stale := generation != p.generation
		p.mu.Unlock()
		if stale {
			return // a newer query superseded this one
		}

		if err != nil {
			if p.onError != nil {
				p.onError(query, err)
			}
			return
		}
		p.onResults(query, results)
	})
	p.mu.Unlock()
}

// Cancel drops any pending search without delivering results.
func (p *ExercisePicker) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generation++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}
