package models

import "github.com/google/uuid"

// Address is one entry in a user's address book. At most one address per
// user carries IsDefault; the services layer owns that invariant.
type Address struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Mobile    string    `json:"mobile"`
	Line1     string    `json:"line1"`
	Line2     string    `json:"line2"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Pincode   string    `json:"pincode"`
	Type      string    `json:"type"`
	IsDefault bool      `json:"isDefault"`
}
