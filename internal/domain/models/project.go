package models

type Project struct {
	ID      string `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	OwnerID string `db:"owner_id" json:"ownerId"`
}

type ProjectMembership struct {
	ProjectID string `db:"project_id" json:"projectId"`
	UserID    string `db:"user_id" json:"userId"`
}
