// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides read-only queries for users.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-news-api/internal/domain"
)

// ListUsers returns every user in insertion order.
func ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	var out []domain.User
	err := db.WithContext(ctx).
		Order("rowid").
		Find(&out).Error
	return out, err
}

// GetUser fetches a single user by username, or ErrNotFound.
func GetUser(ctx context.Context, db *gorm.DB, username string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).
		Where("username = ?", username).
		Take(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}
