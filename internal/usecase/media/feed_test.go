package media

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeSource struct {
	items []Item
	err   error
	calls int
	limit int
}

func (s *fakeSource) Recent(_ context.Context, limit int) ([]Item, error) {
	s.calls++
	s.limit = limit
	return s.items, s.err
}

type mapCache map[string][]Item

func (m mapCache) Get(_ context.Context, key string, dst any) (bool, error) {
	v, ok := m[key]
	if ok {
		*dst.(*[]Item) = v
	}
	return ok, nil
}

func (m mapCache) Set(_ context.Context, key string, v any, _ time.Duration) error {
	m[key] = v.([]Item)
	return nil
}

func TestDisplayable(t *testing.T) {
	items := []Item{
		{ID: "1", MediaType: TypeImage, MediaURL: "a.jpg"},
		{ID: "2", MediaType: "STORY", MediaURL: "s.jpg"},
		{ID: "3", MediaType: TypeVideo, MediaURL: "v.mp4", ThumbnailURL: "v.jpg"},
		{ID: "4", MediaType: TypeCarousel, MediaURL: "c.jpg"},
		{ID: "5", MediaType: TypeImage, MediaURL: "e.jpg"},
	}

	got := Displayable(items, 3)

	wantIDs := []string{"1", "3", "4"}
	if len(got) != len(wantIDs) {
		t.Fatalf("got %d items, want %d", len(got), len(wantIDs))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("item %d = %s, want %s", i, got[i].ID, id)
		}
	}
	if got[1].MediaURL != "v.jpg" {
		t.Fatalf("video media url = %q, want thumbnail", got[1].MediaURL)
	}
	if items[2].MediaURL != "v.mp4" {
		t.Fatal("input was modified")
	}
}

func TestFeedFallback(t *testing.T) {
	tests := []struct {
		name   string
		source Source
	}{
		{"no token", nil},
		{"upstream error", &fakeSource{err: errors.New("status 500")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFeed(tt.source, nil, time.Minute, time.Second, zap.NewNop())

			res := f.Recent(context.Background(), 0)
			if !res.Fallback {
				t.Fatal("expected fallback")
			}
			if len(res.Items) != 6 {
				t.Fatalf("got %d sample posts, want 6", len(res.Items))
			}
		})
	}
}

func TestFeedSampleLimit(t *testing.T) {
	f := NewFeed(nil, nil, 0, 0, zap.NewNop())
	if got := len(f.Recent(context.Background(), 2).Items); got != 2 {
		t.Fatalf("got %d sample posts, want 2", got)
	}
}

func TestFeedCaches(t *testing.T) {
	src := &fakeSource{items: []Item{{ID: "1", MediaType: TypeImage}}}
	cache := mapCache{}
	f := NewFeed(src, cache, time.Minute, time.Second, zap.NewNop())

	for i := 0; i < 3; i++ {
		res := f.Recent(context.Background(), 5)
		if res.Fallback || len(res.Items) != 1 {
			t.Fatalf("call %d: %+v", i, res)
		}
	}
	if src.calls != 1 {
		t.Fatalf("source called %d times, want 1", src.calls)
	}
	if src.limit != 5 {
		t.Fatalf("limit = %d", src.limit)
	}
}

func TestClampLimit(t *testing.T) {
	for in, want := range map[int]int{-1: DefaultLimit, 0: DefaultLimit, 7: 7, 500: MaxLimit} {
		if got := ClampLimit(in); got != want {
			t.Errorf("ClampLimit(%d) = %d, want %d", in, got, want)
		}
	}
}
