package models

import "time"

// User represents a row in the users table.
type User struct {
	UserID    string    `db:"user_id"`
	Email     string    `db:"email"`
	FullName  string    `db:"full_name"`
	Timezone  string    `db:"timezone"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
