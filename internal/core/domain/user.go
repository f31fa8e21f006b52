package domain

// User is an authenticated operator of the backend.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	AuditFields
}
