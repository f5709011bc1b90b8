// Package seed (re)populates the store from embedded YAML fixtures.
//
// Two datasets ship with the binary: "test", the small deterministic set the
// HTTP and repository tests assert against, and "development", a friendlier
// set for running the server locally. Seeding wipes every table first, so it
// can run between tests to restore a known state.
//
// The schema must already exist (see repo.AutoMigrate).
package seed

import (
	"context"
	"embed"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-news-api/internal/domain"
)

//go:embed data/*.yaml
var fixtures embed.FS

// Dataset names.
const (
	Test        = "test"
	Development = "development"
)

// Data is a fully decoded fixture set.
type Data struct {
	Topics   []topicRow   `yaml:"topics"`
	Users    []userRow    `yaml:"users"`
	Articles []articleRow `yaml:"articles"`
	Comments []commentRow `yaml:"comments"`
}

type topicRow struct {
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
}

type userRow struct {
	Username  string `yaml:"username"`
	Name      string `yaml:"name"`
	AvatarURL string `yaml:"avatar_url"`
}

type articleRow struct {
	Title     string    `yaml:"title"`
	Topic     string    `yaml:"topic"`
	Author    string    `yaml:"author"`
	Body      string    `yaml:"body"`
	CreatedAt time.Time `yaml:"created_at"`
	Votes     int64     `yaml:"votes"`
}

type commentRow struct {
	ArticleID int64     `yaml:"article_id"`
	Author    string    `yaml:"author"`
	Body      string    `yaml:"body"`
	Votes     int64     `yaml:"votes"`
	CreatedAt time.Time `yaml:"created_at"`
}

// Datasets lists the embedded dataset names.
func Datasets() []string {
	entries, _ := fixtures.ReadDir("data")
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(out)
	return out
}

// Load decodes the named embedded dataset.
func Load(name string) (*Data, error) {
	raw, err := fixtures.ReadFile("data/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("seed: unknown dataset %q (have %s)", name, strings.Join(Datasets(), ", "))
	}
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("seed: decode %s: %w", name, err)
	}
	return &d, nil
}

// Run wipes the store and inserts d in a single transaction. Article and
// comment ids follow fixture order starting at 1.
func Run(ctx context.Context, db *gorm.DB, d *Data) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Children first so foreign keys never dangle.
		for _, m := range []any{&domain.Idempotency{}, &domain.Comment{}, &domain.Article{}, &domain.User{}, &domain.Topic{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return fmt.Errorf("seed: clear %T: %w", m, err)
			}
		}

		topics := make([]domain.Topic, 0, len(d.Topics))
		for _, t := range d.Topics {
			topics = append(topics, domain.Topic{Slug: t.Slug, Description: t.Description})
		}
		users := make([]domain.User, 0, len(d.Users))
		for _, u := range d.Users {
			users = append(users, domain.User{Username: u.Username, Name: u.Name, AvatarURL: u.AvatarURL})
		}
		articles := make([]domain.Article, 0, len(d.Articles))
		for i, a := range d.Articles {
			articles = append(articles, domain.Article{
				ArticleID: int64(i + 1),
				Title:     a.Title,
				Topic:     a.Topic,
				Author:    a.Author,
				Body:      a.Body,
				CreatedAt: a.CreatedAt.UTC(),
				Votes:     a.Votes,
			})
		}
		comments := make([]domain.Comment, 0, len(d.Comments))
		for i, c := range d.Comments {
			comments = append(comments, domain.Comment{
				CommentID: int64(i + 1),
				ArticleID: c.ArticleID,
				Author:    c.Author,
				Body:      c.Body,
				Votes:     c.Votes,
				CreatedAt: c.CreatedAt.UTC(),
			})
		}

		for _, batch := range []any{&topics, &users, &articles, &comments} {
			if reflect.ValueOf(batch).Elem().Len() == 0 {
				continue
			}
			if err := tx.Omit(clause.Associations).CreateInBatches(batch, 100).Error; err != nil {
				return fmt.Errorf("seed: insert %T: %w", batch, err)
			}
		}
		return nil
	})
}

// RunDataset loads and applies the named dataset.
func RunDataset(ctx context.Context, db *gorm.DB, name string) error {
	d, err := Load(name)
	if err != nil {
		return err
	}
	return Run(ctx, db, d)
}
