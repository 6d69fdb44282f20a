package models

// User represents an authenticated shopper.
type User struct {
	BaseModel
	Name         string    `json:"name"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	Mobile       string    `json:"mobile"`
	Avatar       string    `json:"avatar"`
	PasswordHash string    `json:"-"`
	Addresses    []Address `json:"addresses,omitempty"`
}
