package seed

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-news-api/internal/domain"
)

func newSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.db")
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(&domain.Topic{}, &domain.User{}, &domain.Article{}, &domain.Comment{}, &domain.Idempotency{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestDatasets_ListsEmbeddedFixtures(t *testing.T) {
	got := Datasets()
	if len(got) != 2 || got[0] != Development || got[1] != Test {
		t.Fatalf("Datasets() = %v", got)
	}
}

func TestLoad_UnknownDataset(t *testing.T) {
	if _, err := Load("production"); err == nil {
		t.Fatalf("expected error for unknown dataset")
	}
}

func TestLoad_TestDataset_Shape(t *testing.T) {
	d, err := Load(Test)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(d.Topics) != 3 || len(d.Users) != 4 || len(d.Articles) != 12 || len(d.Comments) != 18 {
		t.Fatalf("unexpected sizes: topics=%d users=%d articles=%d comments=%d",
			len(d.Topics), len(d.Users), len(d.Articles), len(d.Comments))
	}
	first := d.Articles[0]
	want := time.Date(2020, 7, 9, 20, 11, 0, 0, time.UTC)
	if first.Title != "Living in the shadow of a great man" || !first.CreatedAt.Equal(want) || first.Votes != 100 {
		t.Fatalf("article 1 fixture = %+v", first)
	}
}

func TestRun_IsRepeatable(t *testing.T) {
	db := newSeedDB(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := RunDataset(ctx, db, Test); err != nil {
			t.Fatalf("run #%d: %v", i+1, err)
		}
	}

	counts := map[any]int64{
		&domain.Topic{}:   3,
		&domain.User{}:    4,
		&domain.Article{}: 12,
		&domain.Comment{}: 18,
	}
	for model, want := range counts {
		var n int64
		if err := db.Model(model).Count(&n).Error; err != nil {
			t.Fatalf("count %T: %v", model, err)
		}
		if n != want {
			t.Fatalf("count %T = %d; want %d", model, n, want)
		}
	}

	var a domain.Article
	if err := db.Take(&a, "article_id = ?", 1).Error; err != nil {
		t.Fatalf("load article 1: %v", err)
	}
	if a.Votes != 100 || a.Topic != "mitch" || a.Author != "butter_bridge" {
		t.Fatalf("article 1 = %+v", a)
	}
}

func TestRun_DevelopmentDataset(t *testing.T) {
	db := newSeedDB(t)
	if err := RunDataset(context.Background(), db, Development); err != nil {
		t.Fatalf("run development: %v", err)
	}
	var n int64
	db.Model(&domain.Topic{}).Count(&n)
	if n == 0 {
		t.Fatalf("expected development topics")
	}
}
