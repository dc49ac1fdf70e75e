package models

type User struct {
	ID           string `db:"id" json:"id"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
}

// Identity is what a verified session token resolves to.
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
}

type Session struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}
