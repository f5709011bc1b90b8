// Package services – CommentService
//
// CommentService lists the comments attached to an article. An article
// that exists but has no comments yields an empty list; an article that
// does not exist yields ResourceNotFound.
package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-news-api/internal/domain"
	"github.com/tbourn/go-news-api/internal/repo"
)

// CommentService reads comments.
type CommentService struct {
	DB *gorm.DB
}

// NewCommentService binds a CommentService to the shared store handle.
func NewCommentService(db *gorm.DB) *CommentService { return &CommentService{DB: db} }

// ListByArticle returns the comments of articleID, newest first.
func (s *CommentService) ListByArticle(ctx context.Context, articleID int64) ([]domain.Comment, error) {
	ctx, span := otel.Tracer("services/CommentService").Start(ctx, "ListByArticle",
		trace.WithAttributes(attribute.Int64("article.id", articleID)),
	)
	defer span.End()

	ok, err := repo.ArticleExists(ctx, s.DB, articleID)
	if err != nil {
		span.RecordError(err)
		return nil, classify(err, "check article", MsgArticleNotFound)
	}
	if !ok {
		return nil, classify(repo.ErrNotFound, "check article", MsgArticleNotFound)
	}

	out, err := repo.ListCommentsByArticle(ctx, s.DB, articleID)
	if err != nil {
		span.RecordError(err)
		return nil, classify(err, "list comments", MsgArticleNotFound)
	}
	if out == nil {
		out = []domain.Comment{}
	}
	return out, nil
}
