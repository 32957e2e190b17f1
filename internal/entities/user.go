package entities

import "time"

// User represents a registered account in the database
type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"` // UUID
	FullName     string    `gorm:"not null;size:100" json:"full_name"`
	Email        string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PhoneNumber  *string   `gorm:"size:20" json:"phone_number"`
	Address      *string   `gorm:"size:500" json:"address"`
	Image        *string   `gorm:"size:2048" json:"image"` // Reference to a stored file, never the file itself
	PasswordHash string    `gorm:"not null" json:"-"`      // Don't expose password hash in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
