package models

import "time"

// User is a staff account able to sign in to the registration system.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PhoneNumber  string    `bson:"phoneNumber,omitempty" json:"phoneNumber"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`

	// ResetToken is set while a password reset is pending and cleared on use.
	ResetToken        string    `bson:"resetToken,omitempty" json:"-"`
	ResetTokenExpires time.Time `bson:"resetTokenExpires,omitempty" json:"-"`
}

// Session is the result of a successful login.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}
