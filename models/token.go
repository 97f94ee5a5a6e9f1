// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a signed session token issued after successful authentication.
//
// The embedded [jwt.RegisteredClaims] carry subject (user id), issuer and
// expiry. Login and Roles are private claims so that authorization checks do
// not need a database round trip per request.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// Login of the token owner.
	Login string `json:"login"`

	// Roles granted to the owner at the time the token was issued.
	Roles Roles `json:"roles"`

	// SignedString is the compact JWS form handed to clients.
	SignedString string `json:"-"`

	// UserID is a parsed copy of the "sub" claim.
	UserID int64 `json:"-"`
}

// GetUserID parses the "sub" claim as a base-10 int64.
func (t *Token) GetUserID() (int64, error) {
	userIDString, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// Principal returns the identity carried by the token.
func (t *Token) Principal() Principal {
	return Principal{
		UserID: t.UserID,
		Login:  t.Login,
		Roles:  t.Roles,
	}
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
