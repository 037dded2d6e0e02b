package domain

import "time"

// User is an account that can sign in and schedule or sit exams.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
