package domain

type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// Actor is the identity a mutation is performed on behalf of.
type Actor struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

// SystemActor is used when the configured admin account cannot be resolved.
var SystemActor = Actor{Name: "system"}
