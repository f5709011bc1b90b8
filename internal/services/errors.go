// Package services defines the resource accessors for topics, users,
// articles, and comments. This file centralizes the client-facing
// not-found messages and the translation from repository sentinels into
// classified errors.
//
// Only repo.ErrNotFound is classified here. Any other store failure is
// wrapped with context and returned unclassified; the HTTP layer renders
// those as a generic 500.
package services

import (
	"errors"
	"fmt"

	"github.com/tbourn/go-news-api/internal/apperr"
	"github.com/tbourn/go-news-api/internal/repo"
)

// Not-found messages.
const (
	MsgArticleNotFound = "article doesn't exist"
	MsgTopicNotFound   = "topic doesn't exist"
	MsgUserNotFound    = "user doesn't exist"
)

// MsgIdempotencyConflict is returned when an Idempotency-Key is replayed
// with a different inc_votes.
const MsgIdempotencyConflict = "Idempotency-Key already used with a different inc_votes"

// classify maps repo.ErrNotFound to a ResourceNotFound error with msg, keeps
// already classified errors as they are, and wraps everything else with op.
func classify(err error, op, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repo.ErrNotFound) {
		return apperr.NotFound(msg)
	}
	if _, ok := apperr.As(err); ok {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
