package query

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestKeyEquality(t *testing.T) {
	a := Key{Family: FamilyPosts, Kind: KindList, Page: 0, Sort: "createdAt,desc"}
	b := Key{Family: FamilyPosts, Kind: KindList, Page: 0, Sort: "createdAt,desc"}
	if a != b {
		t.Error("Keys built from the same parameters should be equal")
	}

	c := Key{Family: FamilyPosts, Kind: KindList, Page: 1, Sort: "createdAt,desc"}
	if a == c {
		t.Error("Keys with different pages should not be equal")
	}

	d := Key{Family: FamilyReviews, Kind: KindList, Page: 0, Sort: "createdAt,desc"}
	if a == d {
		t.Error("Keys from different families should not be equal")
	}
}

func TestPrefixMatches(t *testing.T) {
	tests := []struct {
		name   string
		prefix Prefix
		key    Key
		want   bool
	}{
		{"family matches any kind", FamilyPrefix(FamilyPosts), Key{Family: FamilyPosts, Kind: KindDetail, Slug: "go"}, true},
		{"family mismatch", FamilyPrefix(FamilyPosts), Key{Family: FamilyReviews, Kind: KindList}, false},
		{"comment scope same post", CommentScope(7), Key{Family: FamilyComments, Kind: KindList, PostID: 7}, true},
		{"comment scope other post", CommentScope(7), Key{Family: FamilyComments, Kind: KindList, PostID: 8}, false},
		{"comment scope other family", CommentScope(7), Key{Family: FamilyPosts, Kind: KindList, PostID: 7}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.prefix.Matches(tt.key); got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestFetchDefaultAlwaysStale(t *testing.T) {
	cache := NewCache()
	key := Key{Family: FamilyPosts, Kind: KindList}
	var calls atomic.Int32

	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		return fmt.Sprintf("result-%d", calls.Load()), nil
	}

	v1, err := cache.Fetch(context.Background(), key, 0, fetch)
	if err != nil {
		t.Fatalf("First fetch failed: %v", err)
	}
	v2, err := cache.Fetch(context.Background(), key, 0, fetch)
	if err != nil {
		t.Fatalf("Second fetch failed: %v", err)
	}

	if calls.Load() != 2 {
		t.Errorf("Expected a refetch per access with a zero fresh window, got %d calls", calls.Load())
	}
	if v1 == v2 {
		t.Error("Second access should have observed the second result")
	}
}

func TestFetchFreshWindow(t *testing.T) {
	cache := NewCache()
	now := time.Now()
	cache.now = func() time.Time { return now }

	key := Key{Family: FamilyCategories, Kind: KindList}
	var calls atomic.Int32

	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		return "categories", nil
	}

	for i := 0; i < 3; i++ {
		if _, err := cache.Fetch(context.Background(), key, 5*time.Minute, fetch); err != nil {
			t.Fatalf("Fetch %d failed: %v", i, err)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("Expected one network call within the fresh window, got %d", calls.Load())
	}

	now = now.Add(5*time.Minute + time.Second)
	if _, err := cache.Fetch(context.Background(), key, 5*time.Minute, fetch); err != nil {
		t.Fatalf("Fetch after expiry failed: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("Expected a refetch once the window elapsed, got %d calls", calls.Load())
	}
}

func TestFetchDedupesConcurrent(t *testing.T) {
	cache := NewCache()
	key := Key{Family: FamilyPosts, Kind: KindList}

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "shared", nil
	}

	const workers = 8
	var wg sync.WaitGroup
	results := make([]any, workers)
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = cache.Fetch(context.Background(), key, 0, fetch)
		}(i)
	}

	// Give every worker time to either start the flight or join it.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("Expected one shared network call, got %d", calls.Load())
	}
	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Errorf("Worker %d failed: %v", i, errs[i])
		}
		if results[i] != "shared" {
			t.Errorf("Worker %d got %v, want the shared result", i, results[i])
		}
	}
}

func TestFetchErrorNotCached(t *testing.T) {
	cache := NewCache()
	key := Key{Family: FamilyPosts, Kind: KindDetail, Slug: "missing"}

	wantErr := errors.New("boom")
	var calls atomic.Int32
	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		return nil, wantErr
	}

	if _, err := cache.Fetch(context.Background(), key, 0, fetch); !errors.Is(err, wantErr) {
		t.Fatalf("Expected the fetch error, got %v", err)
	}
	if _, ok := cache.Peek(key); ok {
		t.Error("A failed fetch must not leave an entry behind")
	}
	if _, err := cache.Fetch(context.Background(), key, 0, fetch); !errors.Is(err, wantErr) {
		t.Fatalf("Expected the fetch error again, got %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("Expected a retry after an error, got %d calls", calls.Load())
	}
}

func TestFetchWaiterObservesContextCancel(t *testing.T) {
	cache := NewCache()
	key := Key{Family: FamilyPosts, Kind: KindList}

	started := make(chan struct{})
	release := make(chan struct{})
	go cache.Fetch(context.Background(), key, 0, func(ctx context.Context) (any, error) {
		close(started)
		<-release
		return "late", nil
	})
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := cache.Fetch(ctx, key, 0, func(ctx context.Context) (any, error) {
		t.Error("The waiter must join the flight, not start its own")
		return nil, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	close(release)
}

func TestInvalidateFamilyPrefix(t *testing.T) {
	cache := NewCache()
	now := time.Now()
	cache.now = func() time.Time { return now }

	keys := []Key{
		{Family: FamilyPosts, Kind: KindList, Page: 0},
		{Family: FamilyPosts, Kind: KindList, Page: 1},
		{Family: FamilyPosts, Kind: KindDetail, Slug: "go"},
		{Family: FamilyPosts, Kind: KindSearch, Keyword: "go"},
	}
	other := Key{Family: FamilyReviews, Kind: KindList}

	for _, k := range append(keys, other) {
		k := k
		if _, err := cache.Fetch(context.Background(), k, time.Hour, func(ctx context.Context) (any, error) {
			return k.String(), nil
		}); err != nil {
			t.Fatalf("Seeding %v failed: %v", k, err)
		}
	}

	cache.Invalidate(FamilyPrefix(FamilyPosts))

	for _, k := range keys {
		if !cache.IsStale(k) {
			t.Errorf("%v should be stale after invalidating the family", k)
		}
	}
	if cache.IsStale(other) {
		t.Error("Another family must not be touched")
	}

	// Stale entries stay readable through Peek.
	if _, ok := cache.Peek(keys[0]); !ok {
		t.Error("Invalidation must not remove entries")
	}
}

func TestMarkStaleForcesRefetch(t *testing.T) {
	cache := NewCache()
	key := Key{Family: FamilyCategories, Kind: KindList}
	var calls atomic.Int32

	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		return "categories", nil
	}

	for i := 0; i < 2; i++ {
		if _, err := cache.Fetch(context.Background(), key, time.Hour, fetch); err != nil {
			t.Fatalf("Fetch %d failed: %v", i, err)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("Expected one call inside the fresh window, got %d", calls.Load())
	}

	// A missing key is a no-op.
	cache.MarkStale(Key{Family: FamilyTags, Kind: KindList})

	cache.MarkStale(key)
	cache.MarkStale(key)
	if !cache.IsStale(key) {
		t.Error("Entry should be stale after MarkStale")
	}

	if _, err := cache.Fetch(context.Background(), key, time.Hour, fetch); err != nil {
		t.Fatalf("Fetch after MarkStale failed: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("Expected a refetch after MarkStale, got %d calls", calls.Load())
	}
}

func TestInvalidateIdempotent(t *testing.T) {
	cache := NewCache()
	key := Key{Family: FamilyTags, Kind: KindList}
	if _, err := cache.Fetch(context.Background(), key, time.Hour, func(ctx context.Context) (any, error) {
		return "tags", nil
	}); err != nil {
		t.Fatal(err)
	}

	cache.Invalidate(FamilyPrefix(FamilyTags))
	cache.Invalidate(FamilyPrefix(FamilyTags))
	cache.Invalidate(FamilyPrefix(FamilyTags))

	if !cache.IsStale(key) {
		t.Error("Entry should be stale")
	}
	if cache.Len() != 1 {
		t.Errorf("Entry count changed under repeated invalidation: %d", cache.Len())
	}
}

func TestCommentScopeIsolation(t *testing.T) {
	cache := NewCache()
	seven := Key{Family: FamilyComments, Kind: KindList, PostID: 7}
	eight := Key{Family: FamilyComments, Kind: KindList, PostID: 8}

	for _, k := range []Key{seven, eight} {
		if _, err := cache.Fetch(context.Background(), k, time.Hour, func(ctx context.Context) (any, error) {
			return "comments", nil
		}); err != nil {
			t.Fatal(err)
		}
	}

	cache.Invalidate(CommentScope(7))

	if !cache.IsStale(seven) {
		t.Error("The mutated post's comments should be stale")
	}
	if cache.IsStale(eight) {
		t.Error("Another post's comments must stay untouched")
	}
}

func TestInvalidateDuringFlightLandsStale(t *testing.T) {
	cache := NewCache()
	key := Key{Family: FamilyPosts, Kind: KindList}

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		if _, err := cache.Fetch(context.Background(), key, time.Hour, func(ctx context.Context) (any, error) {
			close(started)
			<-release
			return "landed", nil
		}); err != nil {
			t.Errorf("Fetch failed: %v", err)
		}
	}()

	<-started
	cache.Invalidate(FamilyPrefix(FamilyPosts))
	close(release)
	<-done

	if !cache.IsStale(key) {
		t.Error("A result overlapping an invalidation must land already stale")
	}
	if v, ok := cache.Peek(key); !ok || v != "landed" {
		t.Error("The landed value itself should still be readable")
	}
}

func TestTypedFetch(t *testing.T) {
	cache := NewCache()
	key := Key{Family: FamilyPosts, Kind: KindDetail, Slug: "go"}

	got, err := Fetch(context.Background(), cache, key, 0, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != 42 {
		t.Errorf("Fetch returned %d, want 42", got)
	}

	_, err = Fetch(context.Background(), cache, Key{Family: FamilyPosts, Kind: KindDetail}, 0, func(ctx context.Context) (int, error) {
		return 0, ErrNotLoaded
	})
	if !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Expected ErrNotLoaded to pass through, got %v", err)
	}
}

func BenchmarkFetchHit(b *testing.B) {
	cache := NewCache()
	key := Key{Family: FamilyCategories, Kind: KindList}
	fetch := func(ctx context.Context) (any, error) { return "categories", nil }

	if _, err := cache.Fetch(context.Background(), key, time.Hour, fetch); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := cache.Fetch(context.Background(), key, time.Hour, fetch); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkInvalidateFamily(b *testing.B) {
	cache := NewCache()
	for i := 0; i < 100; i++ {
		k := Key{Family: FamilyPosts, Kind: KindList, Page: i}
		if _, err := cache.Fetch(context.Background(), k, time.Hour, func(ctx context.Context) (any, error) {
			return i, nil
		}); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Invalidate(FamilyPrefix(FamilyPosts))
	}
}
