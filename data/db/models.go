package db

import "github.com/jackc/pgx/v5/pgtype"

// dates are unix seconds where 0 means the date was never set
type Course struct {
	ID           int64       `db:"id"`
	Shortname    string      `db:"shortname"`
	Fullname     pgtype.Text `db:"fullname"`
	Format       string      `db:"format"`
	StartDate    int64       `db:"startdate"`
	EndDate      int64       `db:"enddate"`
	SortOrder    int32       `db:"sortorder"`
	TimeModified int64       `db:"timemodified"`
}

type CourseFormatOption struct {
	ID       int64  `db:"id"`
	CourseID int64  `db:"course_id"`
	Format   string `db:"format"`
	Name     string `db:"name"`
	Value    string `db:"value"`
}

// min/ max are null when the course has no log entries at all
type LogBounds struct {
	EntryCount int64       `db:"entry_count"`
	FirstEntry pgtype.Int8 `db:"first_entry"`
	LastEntry  pgtype.Int8 `db:"last_entry"`
}
