package guess

import (
	"context"
	"fmt"

	"github.com/pfenwick/coursedates/data/coursestore"
	"github.com/pfenwick/coursedates/data/db"
)

// Estimator guesses course dates from historical activity. A guess of 0
// means no estimate could be made. Invalidate drops any state cached for
// a course so the next guess sees freshly persisted data.
type Estimator interface {
	GuessStart(ctx context.Context, course *coursestore.Course) (int64, error)
	GuessEnd(ctx context.Context, course *coursestore.Course) (int64, error)
	Invalidate(courseID int64)
}

// courses with fewer log entries than this have too little activity to
// commit to a date
const minLogEntries = 10

const daySeconds = 24 * 60 * 60

type logSource interface {
	CourseLogBounds(ctx context.Context, courseID int64) (db.LogBounds, error)
}

// LogEstimator guesses the start date as midnight UTC before a course's
// first log entry and the end date as its last log entry.
type LogEstimator struct {
	logs logSource

	// per course bounds so one batch never reads the log table twice
	// for the same course (the runner is single threaded)
	cache map[int64]db.LogBounds
}

func NewLogEstimator(logs logSource) *LogEstimator {
	return &LogEstimator{
		logs:  logs,
		cache: make(map[int64]db.LogBounds),
	}
}

func (e *LogEstimator) GuessStart(ctx context.Context, course *coursestore.Course) (int64, error) {
	bounds, err := e.bounds(ctx, course.ID)
	if err != nil {
		return 0, err
	}
	if bounds.EntryCount < minLogEntries || !bounds.FirstEntry.Valid {
		return 0, nil
	}
	first := bounds.FirstEntry.Int64
	return first - first%daySeconds, nil
}

func (e *LogEstimator) GuessEnd(ctx context.Context, course *coursestore.Course) (int64, error) {
	bounds, err := e.bounds(ctx, course.ID)
	if err != nil {
		return 0, err
	}
	if bounds.EntryCount < minLogEntries || !bounds.LastEntry.Valid {
		return 0, nil
	}
	return bounds.LastEntry.Int64, nil
}

func (e *LogEstimator) Invalidate(courseID int64) {
	delete(e.cache, courseID)
}

func (e *LogEstimator) bounds(ctx context.Context, courseID int64) (db.LogBounds, error) {
	if b, ok := e.cache[courseID]; ok {
		return b, nil
	}
	b, err := e.logs.CourseLogBounds(ctx, courseID)
	if err != nil {
		return b, fmt.Errorf("error reading log bounds for course %d %v", courseID, err)
	}
	e.cache[courseID] = b
	return b, nil
}
