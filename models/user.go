package models

import "time"

// User is an account. PasswordHash is nil for accounts created through
// Google sign-in.
type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(100)" bson:"_id" json:"id"`
	Name         string    `gorm:"column:nombre;type:varchar(255);not null" bson:"nombre" json:"nombre"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" bson:"email" json:"email"`
	PasswordHash *string   `gorm:"column:password_hash;type:varchar(255)" bson:"passwordHash" json:"passwordHash"`
	ViaGoogle    bool      `gorm:"column:via_google" bson:"viaGoogle,omitempty" json:"viaGoogle,omitempty"`
	CreatedAt    time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

func (User) TableName() string {
	return "usuarios"
}

// PublicUser is what the API returns for a user; it never carries the hash.
type PublicUser struct {
	ID        string `json:"id"`
	Name      string `json:"nombre"`
	Email     string `json:"email"`
	ViaGoogle bool   `json:"viaGoogle,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		ViaGoogle: u.ViaGoogle,
	}
}
