package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/tbourn/go-news-api/internal/apperr"
	"github.com/tbourn/go-news-api/internal/domain"
	"github.com/tbourn/go-news-api/internal/repo"
)

func TestArticleService_Get(t *testing.T) {
	svc := NewArticleService(newSeededDB(t), time.Hour)
	ctx := context.Background()

	a, err := svc.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if a.Title != "Living in the shadow of a great man" || a.Votes != 100 || a.CommentCount != 11 {
		t.Fatalf("unexpected article: %+v", a)
	}

	_, err = svc.Get(ctx, 9999)
	wantKind(t, err, apperr.KindResourceNotFound, MsgArticleNotFound)
}

func TestArticleService_List(t *testing.T) {
	svc := NewArticleService(newSeededDB(t), time.Hour)
	ctx := context.Background()

	all, err := svc.List(ctx, domain.ArticleFilter{SortBy: domain.SortCreatedAt, Desc: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 12 || all[0].ArticleID != 3 {
		t.Fatalf("expected 12 articles newest first (id 3), got %d first=%d", len(all), all[0].ArticleID)
	}

	cats, err := svc.List(ctx, domain.ArticleFilter{Topic: "cats"})
	if err != nil || len(cats) != 1 || cats[0].ArticleID != 5 {
		t.Fatalf("cats = %+v err=%v", cats, err)
	}

	paper, err := svc.List(ctx, domain.ArticleFilter{Topic: "paper"})
	if err != nil {
		t.Fatalf("paper: %v", err)
	}
	if paper == nil || len(paper) != 0 {
		t.Fatalf("expected empty non-nil slice for paper, got %#v", paper)
	}

	_, err = svc.List(ctx, domain.ArticleFilter{Topic: "not-a-topic"})
	wantKind(t, err, apperr.KindResourceNotFound, MsgTopicNotFound)
}

func TestArticleService_ApplyVoteDelta(t *testing.T) {
	svc := NewArticleService(newSeededDB(t), time.Hour)
	ctx := context.Background()

	a, replayed, err := svc.ApplyVoteDelta(ctx, 1, 1, "")
	if err != nil || replayed {
		t.Fatalf("ApplyVoteDelta(+1): replayed=%v err=%v", replayed, err)
	}
	if a.Votes != 101 || a.CommentCount != 11 || a.Body == "" {
		t.Fatalf("unexpected article after +1: %+v", a)
	}

	a, _, err = svc.ApplyVoteDelta(ctx, 1, -150, "")
	if err != nil {
		t.Fatalf("ApplyVoteDelta(-150): %v", err)
	}
	if a.Votes != -49 {
		t.Fatalf("votes = %d; want -49", a.Votes)
	}

	a, _, err = svc.ApplyVoteDelta(ctx, 1, 0, "")
	if err != nil || a.Votes != -49 {
		t.Fatalf("zero delta: votes=%d err=%v", a.Votes, err)
	}

	_, _, err = svc.ApplyVoteDelta(ctx, 9999, 1, "")
	wantKind(t, err, apperr.KindResourceNotFound, MsgArticleNotFound)
}

func TestArticleService_ApplyVoteDelta_MissingArticleLeavesNoKey(t *testing.T) {
	db := newSeededDB(t)
	svc := NewArticleService(db, time.Hour)
	ctx := context.Background()

	_, _, err := svc.ApplyVoteDelta(ctx, 9999, 1, "k-missing")
	wantKind(t, err, apperr.KindResourceNotFound, MsgArticleNotFound)

	if _, err := repo.GetIdempotency(ctx, db, 9999, "k-missing", time.Now().UTC()); err != repo.ErrNotFound {
		t.Fatalf("rolled back transaction must not leave a key behind, got %v", err)
	}
}

func TestArticleService_ApplyVoteDelta_Idempotent(t *testing.T) {
	svc := NewArticleService(newSeededDB(t), time.Hour)
	ctx := context.Background()

	first, replayed, err := svc.ApplyVoteDelta(ctx, 1, 10, "retry-1")
	if err != nil || replayed {
		t.Fatalf("first: replayed=%v err=%v", replayed, err)
	}
	if first.Votes != 110 {
		t.Fatalf("first votes = %d", first.Votes)
	}

	again, replayed, err := svc.ApplyVoteDelta(ctx, 1, 10, "retry-1")
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !replayed || again.Votes != 110 {
		t.Fatalf("replay must not re-apply: replayed=%v votes=%d", replayed, again.Votes)
	}

	_, _, err = svc.ApplyVoteDelta(ctx, 1, -10, "retry-1")
	wantKind(t, err, apperr.KindConflict, MsgIdempotencyConflict)

	// Same key on another article is an independent claim.
	other, replayed, err := svc.ApplyVoteDelta(ctx, 2, 10, "retry-1")
	if err != nil || replayed || other.Votes != 10 {
		t.Fatalf("other article: votes=%d replayed=%v err=%v", other.Votes, replayed, err)
	}
}

func TestArticleService_ApplyVoteDelta_ExpiredKeyIsReclaimed(t *testing.T) {
	svc := NewArticleService(newSeededDB(t), time.Millisecond)
	ctx := context.Background()

	if _, _, err := svc.ApplyVoteDelta(ctx, 1, 1, "short"); err != nil {
		t.Fatalf("first: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	a, replayed, err := svc.ApplyVoteDelta(ctx, 1, 5, "short")
	if err != nil || replayed {
		t.Fatalf("expired key should be reclaimed: replayed=%v err=%v", replayed, err)
	}
	if a.Votes != 106 {
		t.Fatalf("votes = %d; want 106", a.Votes)
	}
}

func TestArticleService_ApplyVoteDelta_Concurrent(t *testing.T) {
	svc := NewArticleService(newSeededDB(t), time.Hour)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			delta := int64(1)
			if i%2 == 1 {
				delta = 2
			}
			if _, _, err := svc.ApplyVoteDelta(ctx, 2, delta, ""); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent ApplyVoteDelta: %v", err)
	}

	a, err := svc.Get(ctx, 2)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if want := int64(n/2*1 + n/2*2); a.Votes != want {
		t.Fatalf("votes = %d; want %d", a.Votes, want)
	}
}

func TestArticleService_ApplyVoteDelta_ConcurrentSameKey(t *testing.T) {
	svc := NewArticleService(newSeededDB(t), time.Hour)
	ctx := context.Background()

	const n = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		applied int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, replayed, err := svc.ApplyVoteDelta(ctx, 2, 3, "same-key")
			if err != nil {
				t.Errorf("ApplyVoteDelta: %v", err)
				return
			}
			if !replayed {
				mu.Lock()
				applied++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if applied != 1 {
		t.Fatalf("delta applied %d times; want exactly once", applied)
	}
	a, err := svc.Get(ctx, 2)
	if err != nil || a.Votes != 3 {
		t.Fatalf("votes = %d err=%v; want 3", a.Votes, err)
	}
}

func TestDirection(t *testing.T) {
	for delta, want := range map[int64]string{5: "up", -1: "down", 0: "zero"} {
		if got := direction(delta); got != want {
			t.Fatalf("direction(%d) = %q; want %q", delta, got, want)
		}
	}
}
