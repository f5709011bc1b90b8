// Package services – TopicService
//
// TopicService exposes the read-only topic listing.
package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	"github.com/tbourn/go-news-api/internal/domain"
	"github.com/tbourn/go-news-api/internal/repo"
)

// TopicService lists topics.
type TopicService struct {
	DB *gorm.DB
}

// NewTopicService binds a TopicService to the shared store handle.
func NewTopicService(db *gorm.DB) *TopicService { return &TopicService{DB: db} }

// List returns all topics in insertion order. It never returns nil.
func (s *TopicService) List(ctx context.Context) ([]domain.Topic, error) {
	ctx, span := otel.Tracer("services/TopicService").Start(ctx, "List")
	defer span.End()

	out, err := repo.ListTopics(ctx, s.DB)
	if err != nil {
		span.RecordError(err)
		return nil, classify(err, "list topics", MsgTopicNotFound)
	}
	if out == nil {
		out = []domain.Topic{}
	}
	return out, nil
}
