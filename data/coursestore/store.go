package coursestore

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pfenwick/coursedates/data/db"
)

const (
	// format whose end date can be derived from the start date and week count
	FormatWeeks = "weeks"

	OptionAutomaticEndDate = "automaticenddate"
	OptionNumSections      = "numsections"

	WeekSeconds = 7 * 24 * 60 * 60

	// week count used when a weeks course never had numsections set
	defaultWeekCount = 4
)

// Course is the record the date guessing operates on. Dates are unix
// seconds with 0 meaning unset.
type Course struct {
	ID        int64
	Shortname string
	Format    string
	StartDate int64
	EndDate   int64
	SortOrder int32
	Options   map[string]string
}

func (c *Course) OptionBool(name string) bool {
	v, ok := c.Options[name]
	return ok && (v == "1" || v == "true")
}

func (c *Course) optionInt(name string, fallback int64) int64 {
	v, ok := c.Options[name]
	if !ok {
		return fallback
	}
	var n int64
	if _, err := fmt.Sscan(v, &n); err != nil || n <= 0 {
		return fallback
	}
	return n
}

type FetchFilter struct {
	// restrict to courses whose start/ end date is still unset
	MissingStart bool
	MissingEnd   bool
	// restrict to these course ids when non empty
	IDs []int64
}

func New(database db.DBTX) *Store {
	return &Store{q: db.New(database), now: func() int64 { return time.Now().Unix() }}
}

type Store struct {
	q *db.Queries

	// stubbed in tests for stable timemodified values
	now func() int64
}

func (s *Store) WithTx(tx pgx.Tx) *Store {
	return &Store{q: s.q.WithTx(tx), now: s.now}
}

// Fetch lists the courses matching the filter in ascending sortorder,
// excluding the site course.
func (s *Store) Fetch(ctx context.Context, auth Capability, filter FetchFilter) ([]Course, error) {
	rows, err := s.q.ListGuessableCourses(ctx, db.ListGuessableCoursesParams{
		MissingStart: filter.MissingStart,
		MissingEnd:   filter.MissingEnd,
		IDs:          filter.IDs,
	})
	if err != nil {
		return nil, fmt.Errorf("error listing courses %v", err)
	}
	courses := make([]Course, 0, len(rows))
	for _, row := range rows {
		course, err := s.fromRow(ctx, row)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, nil
}

// Reload reads a course back from the store. Callers that just persisted
// a course need this to observe any derived fields the write changed.
func (s *Store) Reload(ctx context.Context, auth Capability, id int64) (Course, error) {
	row, err := s.q.GetCourse(ctx, id)
	if err != nil {
		return Course{}, fmt.Errorf("error reloading course %d %v", id, err)
	}
	return s.fromRow(ctx, row)
}

// Persist writes the course dates. The write may change fields beyond the
// ones given: a weeks course with automaticenddate re-derives its end date
// from the new start date. Callers needing the derived state must Reload.
func (s *Store) Persist(ctx context.Context, auth Capability, course *Course) error {
	if !auth.CanManage() {
		return ErrNotPermitted
	}
	err := s.q.UpdateCourseDates(ctx, db.UpdateCourseDatesParams{
		ID:           course.ID,
		StartDate:    course.StartDate,
		EndDate:      course.EndDate,
		TimeModified: s.now(),
	})
	if err != nil {
		return fmt.Errorf("error persisting course %d %v", course.ID, err)
	}
	if course.Format == FormatWeeks && course.OptionBool(OptionAutomaticEndDate) {
		return s.RecomputeWeeksEndDate(ctx, auth, course.ID)
	}
	return nil
}

// RecomputeWeeksEndDate re-derives and writes the end date of a weeks
// course from its stored start date and week count.
func (s *Store) RecomputeWeeksEndDate(ctx context.Context, auth Capability, id int64) error {
	if !auth.CanManage() {
		return ErrNotPermitted
	}
	course, err := s.Reload(ctx, auth, id)
	if err != nil {
		return err
	}
	weeks := course.optionInt(OptionNumSections, defaultWeekCount)
	enddate := course.StartDate + weeks*WeekSeconds
	err = s.q.UpdateCourseDates(ctx, db.UpdateCourseDatesParams{
		ID:           course.ID,
		StartDate:    course.StartDate,
		EndDate:      enddate,
		TimeModified: s.now(),
	})
	if err != nil {
		return fmt.Errorf("error recomputing weeks end date for course %d %v", id, err)
	}
	return nil
}

func (s *Store) fromRow(ctx context.Context, row db.Course) (Course, error) {
	options, err := s.q.GetCourseFormatOptions(ctx, db.GetCourseFormatOptionsParams{
		CourseID: row.ID,
		Format:   row.Format,
	})
	if err != nil {
		return Course{}, fmt.Errorf("error loading format options for course %d %v", row.ID, err)
	}
	course := Course{
		ID:        row.ID,
		Shortname: row.Shortname,
		Format:    row.Format,
		StartDate: row.StartDate,
		EndDate:   row.EndDate,
		SortOrder: row.SortOrder,
		Options:   make(map[string]string, len(options)),
	}
	for _, o := range options {
		course.Options[o.Name] = o.Value
	}
	return course, nil
}
