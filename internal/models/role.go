package models

// Role is carried in the session by the external login flow.
type Role string

const (
	RoleGuest   Role = ""
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)
