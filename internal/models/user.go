package models

// User mirrors the users table.
type User struct {
	UserID       string `db:"user_id"`
	Username     string `db:"username"`
	Name         string `db:"name"`
	PasswordHash string `db:"password_hash"`
	AuditFields
}
