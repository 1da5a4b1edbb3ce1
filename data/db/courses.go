package db

import (
	"context"
)

const courseColumns = `id, shortname, fullname, format, startdate, enddate, sortorder, timemodified`

const getCourse = `
SELECT ` + courseColumns + `
FROM courses
WHERE id = $1
`

func (q *Queries) GetCourse(ctx context.Context, id int64) (Course, error) {
	row := q.db.QueryRow(ctx, getCourse, id)
	var i Course
	err := row.Scan(
		&i.ID,
		&i.Shortname,
		&i.Fullname,
		&i.Format,
		&i.StartDate,
		&i.EndDate,
		&i.SortOrder,
		&i.TimeModified,
	)
	return i, err
}

// course id 1 is the site course which never carries real dates so it is
// always left out of the batch
const listGuessableCourses = `
SELECT ` + courseColumns + `
FROM courses
WHERE id <> 1
  AND (NOT $1::bool OR startdate = 0)
  AND (NOT $2::bool OR enddate = 0)
  AND (cardinality($3::bigint[]) = 0 OR id = ANY($3::bigint[]))
ORDER BY sortorder ASC
`

type ListGuessableCoursesParams struct {
	MissingStart bool    `json:"missing_start"`
	MissingEnd   bool    `json:"missing_end"`
	IDs          []int64 `json:"ids"`
}

func (q *Queries) ListGuessableCourses(
	ctx context.Context,
	arg ListGuessableCoursesParams,
) ([]Course, error) {
	ids := arg.IDs
	if ids == nil {
		ids = []int64{}
	}
	rows, err := q.db.Query(ctx, listGuessableCourses, arg.MissingStart, arg.MissingEnd, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Course
	for rows.Next() {
		var i Course
		if err := rows.Scan(
			&i.ID,
			&i.Shortname,
			&i.Fullname,
			&i.Format,
			&i.StartDate,
			&i.EndDate,
			&i.SortOrder,
			&i.TimeModified,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateCourseDates = `
UPDATE courses
SET startdate = $2, enddate = $3, timemodified = $4
WHERE id = $1
`

type UpdateCourseDatesParams struct {
	ID           int64 `json:"id"`
	StartDate    int64 `json:"startdate"`
	EndDate      int64 `json:"enddate"`
	TimeModified int64 `json:"timemodified"`
}

func (q *Queries) UpdateCourseDates(ctx context.Context, arg UpdateCourseDatesParams) error {
	_, err := q.db.Exec(ctx, updateCourseDates,
		arg.ID,
		arg.StartDate,
		arg.EndDate,
		arg.TimeModified,
	)
	return err
}

const getCourseFormatOptions = `
SELECT id, course_id, format, name, value
FROM course_format_options
WHERE course_id = $1 AND format = $2
`

type GetCourseFormatOptionsParams struct {
	CourseID int64  `json:"course_id"`
	Format   string `json:"format"`
}

func (q *Queries) GetCourseFormatOptions(
	ctx context.Context,
	arg GetCourseFormatOptionsParams,
) ([]CourseFormatOption, error) {
	rows, err := q.db.Query(ctx, getCourseFormatOptions, arg.CourseID, arg.Format)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CourseFormatOption
	for rows.Next() {
		var i CourseFormatOption
		if err := rows.Scan(&i.ID, &i.CourseID, &i.Format, &i.Name, &i.Value); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertCourse = `
INSERT INTO courses (shortname, fullname, format, startdate, enddate, sortorder, timemodified)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`

type InsertCourseParams struct {
	Shortname    string `json:"shortname"`
	Fullname     string `json:"fullname"`
	Format       string `json:"format"`
	StartDate    int64  `json:"startdate"`
	EndDate      int64  `json:"enddate"`
	SortOrder    int32  `json:"sortorder"`
	TimeModified int64  `json:"timemodified"`
}

func (q *Queries) InsertCourse(ctx context.Context, arg InsertCourseParams) (int64, error) {
	row := q.db.QueryRow(ctx, insertCourse,
		arg.Shortname,
		arg.Fullname,
		arg.Format,
		arg.StartDate,
		arg.EndDate,
		arg.SortOrder,
		arg.TimeModified,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const upsertCourseFormatOption = `
INSERT INTO course_format_options (course_id, format, name, value)
VALUES ($1, $2, $3, $4)
ON CONFLICT (course_id, format, name) DO UPDATE SET value = EXCLUDED.value
`

type UpsertCourseFormatOptionParams struct {
	CourseID int64  `json:"course_id"`
	Format   string `json:"format"`
	Name     string `json:"name"`
	Value    string `json:"value"`
}

func (q *Queries) UpsertCourseFormatOption(
	ctx context.Context,
	arg UpsertCourseFormatOptionParams,
) error {
	_, err := q.db.Exec(ctx, upsertCourseFormatOption,
		arg.CourseID,
		arg.Format,
		arg.Name,
		arg.Value,
	)
	return err
}
