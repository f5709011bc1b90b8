// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Article
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only
// persistence and query composition.
//
// Error semantics:
//   - When an article is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// Functions:
//
//   - GetArticle(ctx, db, id) -> *domain.ArticleView, error
//     Fetches one article with its live comment count, or ErrNotFound.
//
//   - ListArticles(ctx, db, filter) -> []domain.ArticleView, error
//     Returns article summaries (no body) with comment counts, ordered per filter.
//
//   - ArticleExists(ctx, db, id) -> bool, error
//
//   - IncrementArticleVotes(ctx, db, id, delta) -> error
//     Applies votes = votes + delta in one statement; ErrNotFound if no row matched.
//
// comment_count is always aggregated from the comments table at query time.
package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tbourn/go-news-api/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

const articleSummaryColumns = "articles.article_id, articles.title, articles.topic, articles.author, " +
	"articles.created_at, articles.votes, COUNT(comments.comment_id) AS comment_count"

// sortColumns maps the public sort keys onto SQL expressions. Only keys in
// this map ever reach ORDER BY.
var sortColumns = map[string]string{
	domain.SortArticleID:    "articles.article_id",
	domain.SortTitle:        "articles.title",
	domain.SortTopic:        "articles.topic",
	domain.SortAuthor:       "articles.author",
	domain.SortCreatedAt:    "articles.created_at",
	domain.SortVotes:        "articles.votes",
	domain.SortCommentCount: "comment_count",
}

// articleViews starts a query over articles LEFT JOINed to their comments and
// grouped per article, so COUNT(comments.comment_id) is 0 for articles
// without comments.
func articleViews(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Table("articles").
		Joins("LEFT JOIN comments ON comments.article_id = articles.article_id").
		Group("articles.article_id")
}

// GetArticle fetches a single article (including body) with its comment
// count. If the record does not exist, it returns ErrNotFound.
func GetArticle(ctx context.Context, db *gorm.DB, id int64) (*domain.ArticleView, error) {
	var v domain.ArticleView
	err := articleViews(ctx, db).
		Select(articleSummaryColumns+", articles.body").
		Where("articles.article_id = ?", id).
		Take(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListArticles returns article summaries matching f. The body column is not
// selected. Ties on the sort key are broken by article_id in the same
// direction so the order is deterministic.
func ListArticles(ctx context.Context, db *gorm.DB, f domain.ArticleFilter) ([]domain.ArticleView, error) {
	q := articleViews(ctx, db).Select(articleSummaryColumns)
	if f.Topic != "" {
		q = q.Where("articles.topic = ?", f.Topic)
	}

	var out []domain.ArticleView
	err := q.Order(orderBy(f)).Scan(&out).Error
	return out, err
}

// orderBy renders the ORDER BY expression for f.
func orderBy(f domain.ArticleFilter) string {
	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = sortColumns[domain.SortCreatedAt]
	}
	dir := "ASC"
	if f.Desc {
		dir = "DESC"
	}
	if col == sortColumns[domain.SortArticleID] {
		return fmt.Sprintf("%s %s", col, dir)
	}
	return fmt.Sprintf("%s %s, articles.article_id %s", col, dir, dir)
}

// ArticleExists reports whether an article with id is present.
func ArticleExists(ctx context.Context, db *gorm.DB, id int64) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Article{}).
		Where("article_id = ?", id).
		Count(&n).Error
	return n > 0, err
}

// IncrementArticleVotes adds delta to the article's votes with a single
// UPDATE ... SET votes = votes + ? statement, so concurrent increments never
// overwrite each other. If no row matched, nothing is mutated and ErrNotFound
// is returned.
func IncrementArticleVotes(ctx context.Context, db *gorm.DB, id, delta int64) error {
	res := db.WithContext(ctx).
		Model(&domain.Article{}).
		Where("article_id = ?", id).
		UpdateColumn("votes", gorm.Expr("votes + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
