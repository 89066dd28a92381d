package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestReopenKeepsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{RequestID: "r1", Success: true}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	events, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event after reopen, got %d", len(events))
	}
}

func TestConcurrentAppends(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	const writers = 16
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.AppendLLMRequest(ctx, LLMRequestEventData{
				RequestID: fmt.Sprintf("req-%d", i),
				Provider:  "mock",
				Model:     "mock",
				Purpose:   "course",
				Success:   true,
			})
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent append: %v", err)
		}
	}

	var n int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM llm_request_events").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != writers {
		t.Fatalf("expected %d events, got %d", writers, n)
	}
}

func TestAppendAndQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	before := time.Now().Add(-time.Second)

	inputs := []LLMRequestEventData{
		{RequestID: "a", Provider: "openrouter", Model: "openai/gpt-4o", Purpose: "course-gen", InputTokens: 100, OutputTokens: 900, LatencyMs: 1200, Success: true, RequestBody: "[user]\nespresso"},
		{RequestID: "b", Provider: "openrouter", Model: "openai/gpt-4o", Purpose: "course-gen", LatencyMs: 300, Success: false, ErrorMessage: "rate limited"},
		{RequestID: "c", Provider: "mock", Model: "mock", Purpose: "other", InputTokens: 5, OutputTokens: 7, Success: true},
	}
	for _, in := range inputs {
		if err := repo.AppendLLMRequest(ctx, in); err != nil {
			t.Fatalf("append %s: %v", in.RequestID, err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	// Newest first.
	if all[0].RequestID != "c" || all[2].RequestID != "a" {
		t.Errorf("unexpected order: %s, %s, %s", all[0].RequestID, all[1].RequestID, all[2].RequestID)
	}
	if all[2].Timestamp.Before(before) {
		t.Errorf("timestamp %v before test start", all[2].Timestamp)
	}
	if !all[2].Success || all[1].Success {
		t.Error("success flags not round-tripped")
	}
	if all[1].ErrorMessage != "rate limited" {
		t.Errorf("error message = %q", all[1].ErrorMessage)
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query limit: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit: expected 1, got %d", len(limited))
	}

	byPurpose, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "course-gen"})
	if err != nil {
		t.Fatalf("query purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Errorf("purpose filter: expected 2, got %d", len(byPurpose))
	}

	future, err := repo.QueryLLMEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("query from: %v", err)
	}
	if len(future) != 0 {
		t.Errorf("from filter: expected 0, got %d", len(future))
	}
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{RequestID: "x", Model: "m", RequestBody: "body"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	events, _ := repo.QueryLLMEvents(ctx, QueryOpts{})

	got, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.RequestBody != "body" {
		t.Fatalf("unexpected event: %+v", got)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing id, got %+v", missing)
	}
}

func TestUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	_ = repo.AppendLLMRequest(ctx, LLMRequestEventData{Model: "gpt", Purpose: "course-gen", InputTokens: 10, OutputTokens: 20, LatencyMs: 100, Success: true})
	_ = repo.AppendLLMRequest(ctx, LLMRequestEventData{Model: "gpt", Purpose: "course-gen", InputTokens: 30, OutputTokens: 40, LatencyMs: 300, Success: true})
	_ = repo.AppendLLMRequest(ctx, LLMRequestEventData{Model: "gpt", Purpose: "course-gen", LatencyMs: 200, Success: false})

	purposes, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(purposes) != 1 {
		t.Fatalf("expected 1 purpose row, got %d", len(purposes))
	}
	p := purposes[0]
	if p.Calls != 3 || p.Failures != 1 || p.InputTokens != 40 || p.OutputTokens != 60 || p.AvgLatencyMs != 200 {
		t.Errorf("unexpected purpose usage: %+v", p)
	}

	models, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(models) != 1 || models[0].Calls != 2 || models[0].OutputTokens != 60 {
		t.Errorf("unexpected model usage: %+v", models)
	}
}

func TestNopEventRepo(t *testing.T) {
	var repo EventRepo = NopEventRepo{}
	ctx := context.Background()
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{}); err != nil {
		t.Fatal(err)
	}
	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil || events != nil {
		t.Fatalf("expected empty result, got %v %v", events, err)
	}
}
