package db

import "context"

const courseLogBounds = `
SELECT count(*), min(time_created), max(time_created)
FROM activity_log
WHERE course_id = $1
`

func (q *Queries) CourseLogBounds(ctx context.Context, courseID int64) (LogBounds, error) {
	row := q.db.QueryRow(ctx, courseLogBounds, courseID)
	var b LogBounds
	err := row.Scan(&b.EntryCount, &b.FirstEntry, &b.LastEntry)
	return b, err
}

const insertLogEntry = `
INSERT INTO activity_log (course_id, user_id, event_name, time_created)
VALUES ($1, $2, $3, $4)
`

type InsertLogEntryParams struct {
	CourseID    int64  `json:"course_id"`
	UserID      int64  `json:"user_id"`
	EventName   string `json:"event_name"`
	TimeCreated int64  `json:"time_created"`
}

func (q *Queries) InsertLogEntry(ctx context.Context, arg InsertLogEntryParams) error {
	_, err := q.db.Exec(ctx, insertLogEntry,
		arg.CourseID,
		arg.UserID,
		arg.EventName,
		arg.TimeCreated,
	)
	return err
}
