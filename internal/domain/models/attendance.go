package models

import "time"

type AttendanceRecord struct {
	ID         int64     `db:"id" json:"id"`
	TeamName   string    `db:"team_name" json:"team"`
	StudentID  string    `db:"student_id" json:"student_id"`
	Present    bool      `db:"present" json:"present"`
	Salon      string    `db:"salon" json:"salon"`
	RecordedAt time.Time `db:"recorded_at" json:"recordedAt"`
}

type AttendanceSheet struct {
	Type    string             `json:"type"`
	Key     string             `json:"key"`
	Records []AttendanceRecord `json:"records"`
}

type FileInfo struct {
	Name string `json:"name"`
}
