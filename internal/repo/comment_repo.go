// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides read-only queries for comments.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-news-api/internal/domain"
)

// ListCommentsByArticle returns the comments of articleID, newest first. It
// returns an empty slice both when the article has no comments and when it
// does not exist; callers that must tell those apart check ArticleExists.
func ListCommentsByArticle(ctx context.Context, db *gorm.DB, articleID int64) ([]domain.Comment, error) {
	var out []domain.Comment
	err := db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("created_at desc").
		Order("comment_id desc").
		Find(&out).Error
	return out, err
}
