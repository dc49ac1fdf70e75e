package models

type Team struct {
	ID      int64    `db:"id" json:"id"`
	Name    string   `db:"name" json:"name"`
	Message *string  `db:"message" json:"message,omitempty"`
	Members []Member `db:"-" json:"members,omitempty"`
}

type Member struct {
	ID        int64  `db:"id" json:"id"`
	TeamID    int64  `db:"team_id" json:"teamId"`
	StudentID string `db:"student_id" json:"studentId" validate:"required"`
	FullName  string `db:"full_name" json:"fullName" validate:"required"`
	Email     string `db:"email" json:"email" validate:"required,email"`
	IsLeader  bool   `db:"is_leader" json:"isLeader"`
}

type TeamApplication struct {
	TeamName string   `json:"teamName"`
	Message  *string  `json:"message"`
	Members  []Member `json:"members"`
}
