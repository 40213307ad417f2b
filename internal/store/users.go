// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/vpac-edu/college-cms/internal/model"
)

// CreateUserParams holds parameters for CreateUser.
type CreateUserParams struct {
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// CreateUser inserts a new user and returns it with the assigned id.
// A zero CreatedAt defaults to the current time.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	const query = `
		INSERT INTO users (username, password_hash, role, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id, username, password_hash, role, created_at`

	if arg.CreatedAt.IsZero() {
		arg.CreatedAt = time.Now().UTC()
	}

	var u model.User
	err := q.db.QueryRowContext(ctx, query,
		arg.Username, arg.PasswordHash, arg.Role, arg.CreatedAt,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	return u, err
}

// GetUserByID fetches a user by id. Returns sql.ErrNoRows when absent.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	const query = `
		SELECT id, username, password_hash, role, created_at
		FROM users WHERE id = ?`

	var u model.User
	err := q.db.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	return u, err
}

// GetUserByUsername fetches a user by username. Returns sql.ErrNoRows when absent.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	const query = `
		SELECT id, username, password_hash, role, created_at
		FROM users WHERE username = ?`

	var u model.User
	err := q.db.QueryRowContext(ctx, query, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	return u, err
}

// ListUsers returns all users, newest first.
func (q *Queries) ListUsers(ctx context.Context) ([]model.User, error) {
	const query = `
		SELECT id, username, password_hash, role, created_at
		FROM users ORDER BY created_at DESC`

	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CountUsers returns the total number of users.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

// UpdateUserParams holds parameters for UpdateUser.
type UpdateUserParams struct {
	Username string
	Role     string
	ID       int64
}

// UpdateUser updates a user's username and role.
func (q *Queries) UpdateUser(ctx context.Context, arg UpdateUserParams) error {
	const query = `UPDATE users SET username = ?, role = ? WHERE id = ?`
	_, err := q.db.ExecContext(ctx, query, arg.Username, arg.Role, arg.ID)
	return err
}

// UpdateUserPasswordParams holds parameters for UpdateUserPassword.
type UpdateUserPasswordParams struct {
	PasswordHash string
	ID           int64
}

// UpdateUserPassword replaces a user's password hash.
func (q *Queries) UpdateUserPassword(ctx context.Context, arg UpdateUserPasswordParams) error {
	const query = `UPDATE users SET password_hash = ? WHERE id = ?`
	_, err := q.db.ExecContext(ctx, query, arg.PasswordHash, arg.ID)
	return err
}

// DeleteUser removes a user by id.
func (q *Queries) DeleteUser(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	return err
}
