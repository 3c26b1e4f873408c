package planstore

import (
	"testing"
	"time"

	"github.com/alfredang/trip-advisor/internal/trip"
)

func TestStorePutGet(t *testing.T) {
	s, err := New(0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	rec := Record{
		ID:        "plan-1",
		Plan:      trip.Plan{Request: trip.Request{Destination: "Tokyo", Days: 5, Budget: 2000}},
		Markdown:  "# Tokyo Trip Plan (5 days)\n",
		Filename:  "tokyo_trip_plan_2026-03-14.md",
		CreatedAt: time.Now(),
	}
	s.Put(rec)

	got, ok := s.Get("plan-1")
	if !ok {
		t.Fatalf("plan-1 not found")
	}
	if got.Filename != rec.Filename || got.Markdown != rec.Markdown {
		t.Fatalf("got %+v", got)
	}
	if _, ok := s.Get("plan-2"); ok {
		t.Fatalf("plan-2 should be absent")
	}
}

func TestStoreEvictsOldest(t *testing.T) {
	s, err := New(2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	s.Put(Record{ID: "plan-1"})
	s.Put(Record{ID: "plan-2"})
	s.Put(Record{ID: "plan-3"})

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if _, ok := s.Get("plan-1"); ok {
		t.Fatalf("plan-1 should have been evicted")
	}
	if _, ok := s.Get("plan-3"); !ok {
		t.Fatalf("plan-3 missing")
	}
}
