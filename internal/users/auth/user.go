// Copyright (c) 2026 AnFr. All rights reserved.

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, Session) and logic for authentication,
authorization, and account lifecycle.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"strings"
	"time"

	"github.com/Ismail26477/an-fr/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the AnFr platform.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	FullName     string       `json:"full_name,omitempty"`
	DisplayName  string       `json:"display_name"`
	AvatarURL    string       `json:"avatar_url,omitempty"`
	Role         sec.UserRole `json:"role"`
	IsVerified   bool         `json:"is_verified"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Identity is the immutable snapshot of the authenticated user that core
// components (watchlist, comments) carry around. It is resolved once per
// request from the access token and never re-fetched mid-operation.
//
// A nil *Identity means "not signed in".
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// Identity derives the component-facing snapshot from a full user record.
func (u *User) Identity() *Identity {
	if u == nil {
		return nil
	}
	return &Identity{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		DisplayName: u.DisplayName,
	}
}

// Label resolves the name shown next to user-generated content.
//
// Fallback chain: full name, then display name, then the local part of the
// email address, then the literal "User".
func (i *Identity) Label() string {
	if i == nil {
		return "User"
	}
	if name := strings.TrimSpace(i.FullName); name != "" {
		return name
	}
	if name := strings.TrimSpace(i.DisplayName); name != "" {
		return name
	}
	if at := strings.IndexByte(i.Email, '@'); at > 0 {
		return i.Email[:at]
	}
	return "User"
}

// Session represents an active refresh-token session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"` // Hashed value of the refresh token. Omitted for security.
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `json:"is_revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldDisplayName     = "display_name"
	FieldLogin           = "login"
	FieldToken           = "token"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldAccessToken     = "access_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
	FieldUser            = "user"
	FieldMessage         = "message"
)
