package guess

import (
	"context"
	"sort"
	"strconv"

	"github.com/pfenwick/coursedates/data/coursestore"
	"github.com/pfenwick/coursedates/data/db"
)

// in-memory store that behaves like the real one: fetch filters and sorts,
// persisting a weeks course with automaticenddate re-derives its end date
type fakeStore struct {
	courses      map[int64]coursestore.Course
	fetchFilters []coursestore.FetchFilter
	persistCalls int
	recomputes   []int64
}

func newFakeStore(courses ...coursestore.Course) *fakeStore {
	s := &fakeStore{courses: make(map[int64]coursestore.Course)}
	for _, c := range courses {
		s.courses[c.ID] = c
	}
	return s
}

func (s *fakeStore) Fetch(
	ctx context.Context,
	auth coursestore.Capability,
	filter coursestore.FetchFilter,
) ([]coursestore.Course, error) {
	s.fetchFilters = append(s.fetchFilters, filter)
	var out []coursestore.Course
	for _, c := range s.courses {
		if c.ID == 1 {
			continue
		}
		if filter.MissingStart && c.StartDate != 0 {
			continue
		}
		if filter.MissingEnd && c.EndDate != 0 {
			continue
		}
		if len(filter.IDs) > 0 {
			found := false
			for _, id := range filter.IDs {
				if id == c.ID {
					found = true
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (s *fakeStore) Persist(
	ctx context.Context,
	auth coursestore.Capability,
	course *coursestore.Course,
) error {
	s.persistCalls++
	s.courses[course.ID] = *course
	if course.Format == coursestore.FormatWeeks && course.OptionBool(coursestore.OptionAutomaticEndDate) {
		s.deriveWeeksEndDate(course.ID)
	}
	return nil
}

func (s *fakeStore) Reload(
	ctx context.Context,
	auth coursestore.Capability,
	id int64,
) (coursestore.Course, error) {
	return s.courses[id], nil
}

func (s *fakeStore) RecomputeWeeksEndDate(
	ctx context.Context,
	auth coursestore.Capability,
	id int64,
) error {
	s.recomputes = append(s.recomputes, id)
	s.deriveWeeksEndDate(id)
	return nil
}

func (s *fakeStore) deriveWeeksEndDate(id int64) {
	c := s.courses[id]
	weeks := int64(4)
	if v, ok := c.Options[coursestore.OptionNumSections]; ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			weeks = n
		}
	}
	c.EndDate = c.StartDate + weeks*coursestore.WeekSeconds
	s.courses[id] = c
}

type fakeEstimator struct {
	starts      map[int64]int64
	ends        map[int64]int64
	invalidated []int64
}

func (e *fakeEstimator) GuessStart(ctx context.Context, course *coursestore.Course) (int64, error) {
	return e.starts[course.ID], nil
}

func (e *fakeEstimator) GuessEnd(ctx context.Context, course *coursestore.Course) (int64, error) {
	return e.ends[course.ID], nil
}

func (e *fakeEstimator) Invalidate(courseID int64) {
	e.invalidated = append(e.invalidated, courseID)
}

type fakeLogSource struct {
	bounds map[int64]db.LogBounds
	calls  int
}

func (f *fakeLogSource) CourseLogBounds(ctx context.Context, courseID int64) (db.LogBounds, error) {
	f.calls++
	return f.bounds[courseID], nil
}

func topicsCourse(id int64, shortname string, start, end int64) coursestore.Course {
	return coursestore.Course{
		ID:        id,
		Shortname: shortname,
		Format:    "topics",
		StartDate: start,
		EndDate:   end,
		SortOrder: int32(id),
		Options:   map[string]string{},
	}
}

func weeksCourse(id int64, shortname string, start, end int64, automatic bool, sections string) coursestore.Course {
	auto := "0"
	if automatic {
		auto = "1"
	}
	return coursestore.Course{
		ID:        id,
		Shortname: shortname,
		Format:    coursestore.FormatWeeks,
		StartDate: start,
		EndDate:   end,
		SortOrder: int32(id),
		Options: map[string]string{
			coursestore.OptionAutomaticEndDate: auto,
			coursestore.OptionNumSections:      sections,
		},
	}
}
