package domain

import "time"

// User is the domain model for shop customers and administrators.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	IsAdmin      bool
	Street       string
	Apartment    string
	Zip          string
	City         string
	Country      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
