// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository helpers for the Idempotency
// model used to make PATCH /articles/:article_id safe to retry.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-news-api/internal/domain"
)

// ErrDuplicate indicates that an idempotency record already exists for the
// given (article_id, key) pair.
var ErrDuplicate = errors.New("duplicate")

// GetIdempotency returns a non-expired record or ErrNotFound.
func GetIdempotency(ctx context.Context, db *gorm.DB, articleID int64, key string, now time.Time) (*domain.Idempotency, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrNotFound
	}
	var rec domain.Idempotency
	err := db.WithContext(ctx).
		Where("article_id = ? AND key = ? AND expires_at > ?", articleID, key, now).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// PurgeExpiredIdempotency deletes the record for (articleID, key) if it has
// expired, so the key can be claimed again.
func PurgeExpiredIdempotency(ctx context.Context, db *gorm.DB, articleID int64, key string, now time.Time) error {
	return db.WithContext(ctx).
		Where("article_id = ? AND key = ? AND expires_at <= ?", articleID, key, now).
		Delete(&domain.Idempotency{}).Error
}

// CreateIdempotency claims (articleID, key). It inserts with ON CONFLICT DO
// NOTHING and returns ErrDuplicate when the pair is already taken, which
// keeps the surrounding transaction usable on every dialect.
func CreateIdempotency(ctx context.Context, db *gorm.DB, articleID int64, key string, delta int64, ttl time.Duration) (*domain.Idempotency, error) {
	now := time.Now().UTC()
	rec := &domain.Idempotency{
		ID:        uuid.NewString(),
		ArticleID: articleID,
		Key:       key,
		Delta:     delta,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(rec)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrDuplicate
	}
	return rec, nil
}
