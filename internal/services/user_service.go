// Package services – UserService
//
// UserService exposes the read-only user listing and single-user lookup.
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

// UserService reads users.
type UserService struct {
	DB *gorm.DB
}

// NewUserService binds a UserService to the shared store handle.
func NewUserService(db *gorm.DB) *UserService { return &UserService{DB: db} }

// List returns all users in insertion order. It never returns nil.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	ctx, span := otel.Tracer("services/UserService").Start(ctx, "List")
	defer span.End()

	out, err := repo.ListUsers(ctx, s.DB)
	if err != nil {
		span.RecordError(err)
		return nil, classify(err, "list users", MsgUserNotFound)
	}
	if out == nil {
		out = []domain.User{}
	}
	return out, nil
}

// Get returns the user with username, or a ResourceNotFound error.
func (s *UserService) Get(ctx context.Context, username string) (*domain.User, error) {
	ctx, span := otel.Tracer("services/UserService").Start(ctx, "Get",
		trace.WithAttributes(attribute.String("user.username", username)),
	)
	defer span.End()

	u, err := repo.GetUser(ctx, s.DB, username)
	if err != nil {
		return nil, classify(err, "get user", MsgUserNotFound)
	}
	return u, nil
}
