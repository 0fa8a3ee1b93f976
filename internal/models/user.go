package models

import "time"

// AdminUser is a creator account for the admin panel.
type AdminUser struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash *string   `db:"password_hash"`
	Plan         string    `db:"plan"`
	CreatedAt    time.Time `db:"created_at"`
}
