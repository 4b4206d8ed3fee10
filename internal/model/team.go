package model

import "time"

// TeamMember is the directory entry linked 1:1 to a User.
type TeamMember struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Title      *string   `json:"title"`
	Department *string   `json:"department"`
	Phone      *string   `json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
}

// TeamMemberView is a TeamMember joined with its owning User.
// Name is "Unknown" and Email empty when the user no longer exists.
type TeamMemberView struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Title      *string   `json:"title"`
	Department *string   `json:"department"`
	Phone      *string   `json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
}
