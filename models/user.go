// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"user_id"`

	// Login is the unique user login identifier.
	Login string `json:"login" validate:"notblank,max=64"`

	// Password carries the plaintext credential on its way in from a
	// register/login request. It is never persisted and never serialised back.
	Password string `json:"password,omitempty" validate:"required,maxbytes=72"`

	// PasswordHash is the salted bcrypt hash stored in the database.
	PasswordHash string `json:"-"`

	// Roles is the capability set granted at registration.
	Roles Roles `json:"roles"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Principal returns the authenticated identity derived from u.
func (u User) Principal() Principal {
	return Principal{
		UserID: u.UserID,
		Login:  u.Login,
		Roles:  u.Roles,
	}
}

// Roles is a set of boolean capabilities. A user may hold several of them at
// once, e.g. donate food and volunteer for deliveries.
type Roles struct {
	Donor     bool `json:"donor"`
	Volunteer bool `json:"volunteer"`
	Recipient bool `json:"recipient"`
}

// Empty reports whether no capability is granted.
func (r Roles) Empty() bool {
	return !r.Donor && !r.Volunteer && !r.Recipient
}

// Principal is the authenticated identity attached to an incoming request.
type Principal struct {
	UserID int64  `json:"user_id"`
	Login  string `json:"login"`
	Roles  Roles  `json:"roles"`
}

// CredentialRotation is the body of a password change request.
type CredentialRotation struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,maxbytes=72"`
}
