package guess

import (
	"context"
	"fmt"
	"time"

	"github.com/pfenwick/coursedates/data/coursestore"
)

// Store is the slice of the course store the decision engine needs.
type Store interface {
	Fetch(ctx context.Context, auth coursestore.Capability, filter coursestore.FetchFilter) ([]coursestore.Course, error)
	Persist(ctx context.Context, auth coursestore.Capability, course *coursestore.Course) error
	Reload(ctx context.Context, auth coursestore.Capability, id int64) (coursestore.Course, error)
	RecomputeWeeksEndDate(ctx context.Context, auth coursestore.Capability, id int64) error
}

// DecisionResult is what one date decision produced: the notification for
// the operator and whether a write was issued.
type DecisionResult struct {
	Notification string
	Persisted    bool
}

// Engine decides per course whether a guessed date is applied, reported
// or rejected. "Cannot guess" outcomes are notifications, never errors.
type Engine struct {
	store  Store
	est    Estimator
	auth   coursestore.Capability
	update bool
}

func NewEngine(store Store, est Estimator, auth coursestore.Capability, update bool) *Engine {
	return &Engine{
		store:  store,
		est:    est,
		auth:   auth,
		update: update,
	}
}

// DecideStart guesses the start date of the course, mutating it in memory
// when the guess is new. When updates are on, a persisted start change is
// followed by a reload so later decisions see any derived fields, and the
// estimator state for the course is invalidated.
func (e *Engine) DecideStart(ctx context.Context, course *coursestore.Course) (DecisionResult, error) {
	original := course.StartDate
	guessed, err := e.est.GuessStart(ctx, course)
	if err != nil {
		return DecisionResult{}, err
	}

	if guessed == original {
		if guessed == 0 {
			return DecisionResult{Notification: notify(course, "cannot guess start date")}, nil
		}
		return DecisionResult{
			Notification: notify(course, "start date unchanged at %s", formatDate(guessed)),
		}, nil
	}
	if guessed == 0 {
		return DecisionResult{Notification: notify(course, "cannot guess start date")}, nil
	}

	course.StartDate = guessed
	result := DecisionResult{
		Notification: notify(course, "start date set to %s", formatDate(guessed)),
	}
	if !e.update {
		return result, nil
	}
	if err := e.store.Persist(ctx, e.auth, course); err != nil {
		return DecisionResult{}, err
	}
	reloaded, err := e.store.Reload(ctx, e.auth, course.ID)
	if err != nil {
		return DecisionResult{}, err
	}
	*course = reloaded
	e.est.Invalidate(course.ID)
	result.Persisted = true
	return result, nil
}

// DecideEnd guesses the end date of the course. Weeks courses with an
// automatic end date skip the estimator entirely: the store derives their
// end date. A guessed end date that is not after the (possibly just
// updated) start date is rejected and never written, even with updates on.
func (e *Engine) DecideEnd(ctx context.Context, course *coursestore.Course) (DecisionResult, error) {
	original := course.EndDate

	if course.Format == coursestore.FormatWeeks && course.OptionBool(coursestore.OptionAutomaticEndDate) {
		if !e.update {
			// the derived value only exists once the recalculation commits
			return DecisionResult{Notification: notify(course, "the default weeks end date applies")}, nil
		}
		if err := e.store.RecomputeWeeksEndDate(ctx, e.auth, course.ID); err != nil {
			return DecisionResult{}, err
		}
		reloaded, err := e.store.Reload(ctx, e.auth, course.ID)
		if err != nil {
			return DecisionResult{}, err
		}
		*course = reloaded
		return DecisionResult{
			Notification: notify(course, "end date automatically set to %s", formatDate(course.EndDate)),
			Persisted:    true,
		}, nil
	}

	guessed, err := e.est.GuessEnd(ctx, course)
	if err != nil {
		return DecisionResult{}, err
	}

	if guessed == original {
		if guessed == 0 {
			return DecisionResult{Notification: notify(course, "cannot guess end date")}, nil
		}
		// not re-validated against the start date when unchanged
		return DecisionResult{
			Notification: notify(course, "end date unchanged at %s", formatDate(guessed)),
		}, nil
	}
	if guessed == 0 {
		return DecisionResult{Notification: notify(course, "cannot guess end date")}, nil
	}

	course.EndDate = guessed
	if guessed <= course.StartDate {
		return DecisionResult{
			Notification: notify(course, "guessed end date %s is not after start date %s, not saving",
				formatDate(guessed), formatDate(course.StartDate)),
		}, nil
	}

	result := DecisionResult{
		Notification: notify(course, "end date set to %s", formatDate(guessed)),
	}
	if e.update {
		if err := e.store.Persist(ctx, e.auth, course); err != nil {
			return DecisionResult{}, err
		}
		result.Persisted = true
	}
	return result, nil
}

func notify(course *coursestore.Course, format string, args ...interface{}) string {
	return fmt.Sprintf("course %s (id %d): %s", course.Shortname, course.ID, fmt.Sprintf(format, args...))
}

// UTC so batch output is reproducible no matter where it runs
func formatDate(ts int64) string {
	return time.Unix(ts, 0).UTC().Format("2006-01-02 15:04")
}
