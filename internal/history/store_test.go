package history

import (
	"context"
	"testing"
	"time"

	"ytgrab/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	video := model.VideoInfo{ID: "abc123", Title: "First"}
	res := model.DownloadResult{
		OutputPath: "/out/First.mp4",
		Format:     model.FormatInfo{ID: "22", Ext: "mp4", Height: 720},
		Bytes:      1024,
	}
	if err := s.Record(ctx, video, res, "https://youtube.com/watch?v=abc123"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.ID == "" {
		t.Error("entry has no id")
	}
	if e.Title != "First" || e.FormatID != "22" || e.Height != 720 || e.Bytes != 1024 {
		t.Errorf("entry = %+v", e)
	}
	if e.CreatedAt.IsZero() {
		t.Error("entry has no timestamp")
	}
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, title := range []string{"oldest", "middle", "newest"} {
		err := s.Insert(ctx, Entry{
			VideoID:    "v",
			Title:      title,
			URL:        "https://example.com",
			FormatID:   "18",
			Ext:        "mp4",
			OutputPath: "/out/" + title + ".mp4",
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("Insert %q: %v", title, err)
		}
	}

	entries, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (limit)", len(entries))
	}
	if entries[0].Title != "newest" || entries[1].Title != "middle" {
		t.Errorf("order = [%s, %s], want [newest, middle]", entries[0].Title, entries[1].Title)
	}
}

func TestTotals(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	count, bytes, err := s.Totals(ctx)
	if err != nil {
		t.Fatalf("Totals on empty store: %v", err)
	}
	if count != 0 || bytes != 0 {
		t.Errorf("empty store totals = %d / %d", count, bytes)
	}

	for _, n := range []int64{100, 250} {
		err := s.Insert(ctx, Entry{
			VideoID: "v", Title: "t", URL: "u", FormatID: "18", Ext: "mp4",
			OutputPath: "/out/t.mp4", Bytes: n,
		})
		if err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	count, bytes, err = s.Totals(ctx)
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if count != 2 || bytes != 350 {
		t.Errorf("totals = %d / %d, want 2 / 350", count, bytes)
	}
}
