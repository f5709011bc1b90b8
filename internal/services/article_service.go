// Package services – ArticleService
//
// ArticleService reads articles and applies vote deltas. Vote updates are a
// single in-store increment followed by a read-back inside the same
// transaction, so concurrent deltas on one article never lose an update and
// the returned article reflects exactly the committed state.
//
// When the caller supplies an idempotency key, the key is claimed in the same
// transaction as the increment. A retry with the same key and delta gets the
// live article back without the delta being applied again; a retry with a
// different delta is a Conflict.
package services

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-news-api/internal/apperr"
	"github.com/tbourn/go-news-api/internal/domain"
	"github.com/tbourn/go-news-api/internal/repo"
)

// DefaultIdempotencyTTL is used when ArticleService.IdempotencyTTL is unset.
const DefaultIdempotencyTTL = 24 * time.Hour

// ArticleService reads and votes on articles.
type ArticleService struct {
	DB *gorm.DB
	// IdempotencyTTL bounds how long a claimed Idempotency-Key is honoured.
	IdempotencyTTL time.Duration
}

// NewArticleService binds an ArticleService to the shared store handle.
func NewArticleService(db *gorm.DB, ttl time.Duration) *ArticleService {
	return &ArticleService{DB: db, IdempotencyTTL: ttl}
}

func (s *ArticleService) ttl() time.Duration {
	if s.IdempotencyTTL <= 0 {
		return DefaultIdempotencyTTL
	}
	return s.IdempotencyTTL
}

// Get returns a single article with its body and live comment count.
func (s *ArticleService) Get(ctx context.Context, id int64) (*domain.ArticleView, error) {
	ctx, span := otel.Tracer("services/ArticleService").Start(ctx, "Get",
		trace.WithAttributes(attribute.Int64("article.id", id)),
	)
	defer span.End()

	a, err := repo.GetArticle(ctx, s.DB, id)
	if err != nil {
		return nil, classify(err, "get article", MsgArticleNotFound)
	}
	return a, nil
}

// List returns article summaries matching f. Filtering by a topic that does
// not exist is a ResourceNotFound; an existing topic without articles yields
// an empty list.
func (s *ArticleService) List(ctx context.Context, f domain.ArticleFilter) ([]domain.ArticleView, error) {
	ctx, span := otel.Tracer("services/ArticleService").Start(ctx, "List",
		trace.WithAttributes(
			attribute.String("article.topic", f.Topic),
			attribute.String("article.sort_by", f.SortBy),
			attribute.Bool("article.desc", f.Desc),
		),
	)
	defer span.End()

	if f.Topic != "" {
		ok, err := repo.TopicExists(ctx, s.DB, f.Topic)
		if err != nil {
			span.RecordError(err)
			return nil, classify(err, "check topic", MsgTopicNotFound)
		}
		if !ok {
			return nil, apperr.NotFound(MsgTopicNotFound)
		}
	}

	out, err := repo.ListArticles(ctx, s.DB, f)
	if err != nil {
		span.RecordError(err)
		return nil, classify(err, "list articles", MsgArticleNotFound)
	}
	if out == nil {
		out = []domain.ArticleView{}
	}
	return out, nil
}

// ApplyVoteDelta adds delta to the votes of article id and returns the
// updated article. replayed is true when key had already been used with the
// same delta and the stored effect was not applied a second time.
func (s *ArticleService) ApplyVoteDelta(ctx context.Context, id, delta int64, key string) (a *domain.ArticleView, replayed bool, err error) {
	ctx, span := otel.Tracer("services/ArticleService").Start(ctx, "ApplyVoteDelta",
		trace.WithAttributes(
			attribute.Int64("article.id", id),
			attribute.Int64("vote.delta", delta),
			attribute.Bool("idempotency.key_present", key != ""),
		),
	)
	defer span.End()

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if key != "" {
			now := time.Now().UTC()
			// A write first, so the transaction takes the write lock
			// before it reads anything.
			if err := repo.PurgeExpiredIdempotency(ctx, tx, id, key, now); err != nil {
				return err
			}
			_, err := repo.CreateIdempotency(ctx, tx, id, key, delta, s.ttl())
			switch {
			case errors.Is(err, repo.ErrDuplicate):
				rec, gerr := repo.GetIdempotency(ctx, tx, id, key, now)
				if gerr != nil {
					return gerr
				}
				if rec.Delta != delta {
					return apperr.Conflict(MsgIdempotencyConflict)
				}
				cur, gerr := repo.GetArticle(ctx, tx, id)
				if gerr != nil {
					return gerr
				}
				a, replayed = cur, true
				return nil
			case err != nil:
				return err
			}
		}

		if err := repo.IncrementArticleVotes(ctx, tx, id, delta); err != nil {
			return err
		}
		cur, err := repo.GetArticle(ctx, tx, id)
		if err != nil {
			return err
		}
		a = cur
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, false, classify(err, "apply vote delta", MsgArticleNotFound)
	}

	if replayed {
		voteReplays.Inc()
	} else {
		votesApplied.WithLabelValues(direction(delta)).Inc()
	}
	span.SetAttributes(attribute.Int64("article.votes", a.Votes), attribute.Bool("idempotency.replayed", replayed))
	return a, replayed, nil
}
