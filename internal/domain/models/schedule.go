package models

import "time"

type ScheduleItem struct {
	ID         int64  `db:"id" json:"-"`
	CourseName string `db:"course_name" json:"courseName"`
	Day        int    `db:"day" json:"day"`
	StartHour  int    `db:"start_hour" json:"startHour"`
	Duration   int    `db:"duration" json:"duration"`
	UserID     string `db:"user_id" json:"-"`
}

type ScheduleEvent struct {
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// RawScheduleEvent is a client supplied event before its timestamps are parsed.
type RawScheduleEvent struct {
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}
