// Package handlers implements the HTTP endpoints of the news API.
//
// Handlers are transport-thin: they validate path, query and body input with
// package validate, call a service, and shape the result into a
// {"<resource>": data} envelope. On failure they record the error with
// c.Error and return; middleware.ErrorHandler owns every error response.
package handlers

import (
	"context"

	"github.com/tbourn/go-news-api/internal/domain"
)

// TopicService lists topics.
type TopicService interface {
	List(ctx context.Context) ([]domain.Topic, error)
}

// ArticleService reads articles and applies vote deltas.
//
// ApplyVoteDelta reports replayed=true when key had already been applied
// with the same delta.
type ArticleService interface {
	Get(ctx context.Context, id int64) (*domain.ArticleView, error)
	List(ctx context.Context, f domain.ArticleFilter) ([]domain.ArticleView, error)
	ApplyVoteDelta(ctx context.Context, id, delta int64, key string) (a *domain.ArticleView, replayed bool, err error)
}

// CommentService lists the comments of an article.
type CommentService interface {
	ListByArticle(ctx context.Context, articleID int64) ([]domain.Comment, error)
}

// UserService reads users.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, username string) (*domain.User, error)
}

// Handlers groups the HTTP endpoints. It depends only on the service
// interfaces above.
type Handlers struct {
	topics   TopicService
	articles ArticleService
	comments CommentService
	users    UserService
}

// New constructs a Handlers bound to the given services.
func New(topics TopicService, articles ArticleService, comments CommentService, users UserService) *Handlers {
	return &Handlers{topics: topics, articles: articles, comments: comments, users: users}
}
