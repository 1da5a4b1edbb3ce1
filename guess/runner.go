package guess

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/pfenwick/coursedates/data/coursestore"
)

// Options mirror the guess command's flags.
type Options struct {
	GuessStart bool
	GuessEnd   bool
	GuessAll   bool
	Update     bool
	Filter     []int64
}

// Runner walks the matching courses one at a time and writes the decision
// notifications to out. Courses are processed to completion (including
// any persistence round trip) before the next one starts.
type Runner struct {
	store  Store
	est    Estimator
	auth   coursestore.Capability
	out    io.Writer
	logger *log.Entry
}

func NewRunner(
	store Store,
	est Estimator,
	auth coursestore.Capability,
	out io.Writer,
	logger *log.Entry,
) *Runner {
	return &Runner{
		store:  store,
		est:    est,
		auth:   auth,
		out:    out,
		logger: logger,
	}
}

func (r *Runner) Run(ctx context.Context, opts Options) error {
	filter := coursestore.FetchFilter{
		// guessall lifts the only-if-unset restriction
		MissingStart: opts.GuessStart && !opts.GuessAll,
		MissingEnd:   opts.GuessEnd && !opts.GuessAll,
		IDs:          opts.Filter,
	}
	courses, err := r.store.Fetch(ctx, r.auth, filter)
	if err != nil {
		return err
	}
	r.logger.Infof("Guessing dates for %d courses", len(courses))

	engine := NewEngine(r.store, r.est, r.auth, opts.Update)
	updated := 0
	for i := range courses {
		course := &courses[i]
		if opts.GuessStart || opts.GuessAll {
			result, err := engine.DecideStart(ctx, course)
			if err != nil {
				return fmt.Errorf("course %d start date decision failed %v", course.ID, err)
			}
			fmt.Fprintln(r.out, result.Notification)
			if result.Persisted {
				updated++
			}
		}
		if opts.GuessEnd || opts.GuessAll {
			result, err := engine.DecideEnd(ctx, course)
			if err != nil {
				return fmt.Errorf("course %d end date decision failed %v", course.ID, err)
			}
			fmt.Fprintln(r.out, result.Notification)
			if result.Persisted {
				updated++
			}
		}
	}
	r.logger.Infof("Issued %d course date updates", updated)
	return nil
}

// ParseIDFilter parses the comma separated --filter flag value. An empty
// value means no filter.
func ParseIDFilter(value string) ([]int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid course id %q in filter", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
