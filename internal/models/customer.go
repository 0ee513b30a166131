package models

import (
	"strings"
	"time"
)

// Customer is a registered customer. Identity and demographic fields are set
// at registration; contact fields (phone, email) may be updated later.
type Customer struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	OtherNames    string    `json:"other_names,omitempty"`
	Gender        string    `json:"gender"`
	DateOfBirth   string    `json:"date_of_birth"`
	Citizenship   string    `json:"citizenship"`
	MaritalStatus string    `json:"marital_status"`
	Hometown      string    `json:"hometown"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// FullName joins the name parts for display and search.
func (c Customer) FullName() string {
	parts := []string{c.FirstName}
	if c.OtherNames != "" {
		parts = append(parts, c.OtherNames)
	}
	parts = append(parts, c.LastName)
	return strings.Join(parts, " ")
}
