// Package deadline computes mediation procedure deadlines: target dates a
// fixed number of weeks after a start date, and which of those week offsets
// apply to each dispute category.
package deadline

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/iwvelando/mediation-calc/pkg/constants"
	"github.com/iwvelando/mediation-calc/pkg/datetime"
)

// Schedule maps a week offset to its target date.
type Schedule map[int]time.Time

// Engine holds an immutable category catalog and the union of its week
// offsets. It is safe for concurrent use.
type Engine struct {
	categories []Category
	offsets    []int
	index      map[string]map[int]struct{}
	now        func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the clock used when no start date is given.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine validates categories and builds an engine over them. Names must
// be non-empty and unique and every week offset must be positive.
func NewEngine(categories []Category, opts ...Option) (*Engine, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("deadline catalog is empty")
	}

	e := &Engine{
		categories: make([]Category, 0, len(categories)),
		index:      make(map[string]map[int]struct{}, len(categories)),
		now:        time.Now,
	}

	union := make(map[int]struct{})
	for i, category := range categories {
		if strings.TrimSpace(category.Name) == "" {
			return nil, fmt.Errorf("category %d has an empty name", i)
		}
		if _, exists := e.index[category.Name]; exists {
			return nil, fmt.Errorf("duplicate category %q", category.Name)
		}
		if len(category.Weeks) == 0 {
			return nil, fmt.Errorf("category %q has no week offsets", category.Name)
		}

		weeks := make(map[int]struct{}, len(category.Weeks))
		for _, week := range category.Weeks {
			if week <= 0 {
				return nil, fmt.Errorf("category %q has non-positive week offset %d", category.Name, week)
			}
			weeks[week] = struct{}{}
			union[week] = struct{}{}
		}

		e.index[category.Name] = weeks
		e.categories = append(e.categories, category.clone())
	}

	e.offsets = make([]int, 0, len(union))
	for week := range union {
		e.offsets = append(e.offsets, week)
	}
	sort.Ints(e.offsets)

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Default returns an engine over DefaultCategories.
func Default(opts ...Option) *Engine {
	e, err := NewEngine(DefaultCategories(), opts...)
	if err != nil {
		panic(fmt.Sprintf("default deadline catalog is invalid: %v", err))
	}
	return e
}

// Categories returns the catalog in construction order.
func (e *Engine) Categories() []Category {
	out := make([]Category, len(e.categories))
	for i, category := range e.categories {
		out[i] = category.clone()
	}
	return out
}

// Offsets returns every week offset used by any category, ascending and
// without duplicates.
func (e *Engine) Offsets() []int {
	out := make([]int, len(e.offsets))
	copy(out, e.offsets)
	return out
}

// IsApplicable reports whether week applies to the named category. Unknown
// names are not applicable.
func (e *Engine) IsApplicable(name string, week int) bool {
	weeks, ok := e.index[name]
	if !ok {
		return false
	}
	_, ok = weeks[week]
	return ok
}

// Deadlines returns start plus each offset in weeks, using calendar days.
func (e *Engine) Deadlines(start time.Time) Schedule {
	schedule := make(Schedule, len(e.offsets))
	for _, week := range e.offsets {
		schedule[week] = start.AddDate(0, 0, constants.DaysPerWeek*week)
	}
	return schedule
}

// Today returns midnight of the current day on the engine's clock.
func (e *Engine) Today() time.Time {
	return datetime.Today(e.now())
}

// DeadlinesFromNow computes deadlines starting today, truncated to midnight
// in the clock's location.
func (e *Engine) DeadlinesFromNow() Schedule {
	return e.Deadlines(e.Today())
}

// DeadlinesFromString parses text as DD.MM.YYYY and computes deadlines.
func (e *Engine) DeadlinesFromString(text string) (Schedule, error) {
	start, err := ParseStartDate(text)
	if err != nil {
		return nil, err
	}
	return e.Deadlines(start), nil
}

// ParseStartDate parses text in the strict DD.MM.YYYY layout.
func ParseStartDate(text string) (time.Time, error) {
	start, err := time.Parse(constants.DateLayout, text)
	if err != nil {
		return time.Time{}, &InvalidDateFormatError{Input: text, Err: err}
	}
	return start, nil
}
