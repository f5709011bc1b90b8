package repo

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestListTopics_InsertionOrder(t *testing.T) {
	db := newSeededDB(t)
	got, err := ListTopics(context.Background(), db)
	if err != nil {
		t.Fatalf("ListTopics: %v", err)
	}
	want := []string{"mitch", "cats", "paper"}
	if len(got) != len(want) {
		t.Fatalf("len = %d; want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Slug != w || got[i].Description == "" {
			t.Fatalf("topic[%d] = %+v; want slug %q", i, got[i], w)
		}
	}
}

func TestTopicExists(t *testing.T) {
	db := newSeededDB(t)
	ctx := context.Background()
	if ok, err := TopicExists(ctx, db, "paper"); err != nil || !ok {
		t.Fatalf("TopicExists(paper) = %v, %v", ok, err)
	}
	if ok, err := TopicExists(ctx, db, "dogs"); err != nil || ok {
		t.Fatalf("TopicExists(dogs) = %v, %v", ok, err)
	}
}

func TestListUsers_And_GetUser(t *testing.T) {
	db := newSeededDB(t)
	ctx := context.Background()

	users, err := ListUsers(ctx, db)
	if err != nil || len(users) != 4 {
		t.Fatalf("ListUsers = %d, %v", len(users), err)
	}
	if users[0].Username != "butter_bridge" || users[0].Name != "jonny" || users[0].AvatarURL == "" {
		t.Fatalf("users[0] = %+v", users[0])
	}

	u, err := GetUser(ctx, db, "lurker")
	if err != nil || u.Name != "do_nothing" {
		t.Fatalf("GetUser(lurker) = %+v, %v", u, err)
	}
	if _, err := GetUser(ctx, db, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetUser(nobody) err = %v; want ErrNotFound", err)
	}
}

func TestListCommentsByArticle(t *testing.T) {
	db := newSeededDB(t)
	ctx := context.Background()

	got, err := ListCommentsByArticle(ctx, db, 1)
	if err != nil {
		t.Fatalf("ListCommentsByArticle: %v", err)
	}
	if len(got) != 11 {
		t.Fatalf("article 1 comments = %d; want 11", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.After(got[i-1].CreatedAt) {
			t.Fatalf("comments not newest-first at %d: %v after %v", i, got[i].CreatedAt, got[i-1].CreatedAt)
		}
	}
	for _, c := range got {
		if c.ArticleID != 1 {
			t.Fatalf("foreign comment leaked: %+v", c)
		}
	}

	empty, err := ListCommentsByArticle(ctx, db, 2)
	if err != nil || len(empty) != 0 {
		t.Fatalf("article 2 comments = %v, %v; want none", empty, err)
	}
}

func TestGetIdempotency_Lifecycle(t *testing.T) {
	db := newSeededDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := GetIdempotency(ctx, db, 1, "   ", now); err != ErrNotFound {
		t.Fatalf("blank key err = %v; want ErrNotFound", err)
	}
	if _, err := GetIdempotency(ctx, db, 1, "k1", now); err != ErrNotFound {
		t.Fatalf("missing key err = %v; want ErrNotFound", err)
	}

	rec, err := CreateIdempotency(ctx, db, 1, "k1", 5, time.Hour)
	if err != nil || rec.ID == "" || rec.Delta != 5 {
		t.Fatalf("CreateIdempotency = %+v, %v", rec, err)
	}
	if _, err := CreateIdempotency(ctx, db, 1, "k1", 7, time.Hour); err != ErrDuplicate {
		t.Fatalf("duplicate err = %v; want ErrDuplicate", err)
	}
	// Same key on another article is independent.
	if _, err := CreateIdempotency(ctx, db, 2, "k1", 7, time.Hour); err != nil {
		t.Fatalf("same key other article: %v", err)
	}

	got, err := GetIdempotency(ctx, db, 1, "k1", now)
	if err != nil || got.Delta != 5 {
		t.Fatalf("GetIdempotency = %+v, %v", got, err)
	}

	// Once expired it is invisible and can be purged and reclaimed.
	later := now.Add(2 * time.Hour)
	if _, err := GetIdempotency(ctx, db, 1, "k1", later); err != ErrNotFound {
		t.Fatalf("expired err = %v; want ErrNotFound", err)
	}
	if err := PurgeExpiredIdempotency(ctx, db, 1, "k1", later); err != nil {
		t.Fatalf("PurgeExpiredIdempotency: %v", err)
	}
	if _, err := CreateIdempotency(ctx, db, 1, "k1", 9, time.Hour); err != nil {
		t.Fatalf("reclaim after purge: %v", err)
	}
}
