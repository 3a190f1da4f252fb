// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"platepress/internal/models"
)

// UserStore manages author accounts. Authentication lives elsewhere; this
// service only creates seed authors and resolves handles.
type UserStore struct {
	db *sql.DB
}

// NewUserStore returns a new UserStore.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user and returns it.
func (s *UserStore) Create(ctx context.Context, u *models.User) (*models.User, error) {
	result := &models.User{}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, display_name, handle)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, password_hash, display_name, handle, created_at
	`, u.Email, u.PasswordHash, u.DisplayName, u.Handle).Scan(
		&result.ID, &result.Email, &result.PasswordHash,
		&result.DisplayName, &result.Handle, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return result, nil
}

// FindByHandle retrieves a user by handle. Returns nil if not found.
func (s *UserStore) FindByHandle(ctx context.Context, handle string) (*models.User, error) {
	u := &models.User{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, display_name, handle, created_at
		FROM users WHERE LOWER(handle) = LOWER($1)
	`, handle).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.Handle, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by handle: %w", err)
	}
	return u, nil
}
