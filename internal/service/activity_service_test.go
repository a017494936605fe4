package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace/internal/models"
)

func TestActivityList(t *testing.T) {
	ctx := context.Background()

	var gotFrom, gotTo time.Time
	var gotType string
	events := &mockEvents{
		listFn: func(ctx context.Context, from, to time.Time, typ string) ([]models.Event, error) {
			gotFrom, gotTo, gotType = from, to, typ
			return []models.Event{{EventID: "e1", Type: models.EventSignup}}, nil
		},
	}
	s := NewActivityService(events)

	loc := time.FixedZone("UTC+5", 5*3600)
	from := time.Date(2026, 8, 1, 5, 0, 0, 0, loc)
	to := time.Date(2026, 8, 31, 5, 0, 0, 0, loc)

	got, err := s.List(ctx, ActivityFilter{From: from, To: to, Type: "  signup "})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].EventID != "e1" {
		t.Fatalf("unexpected events: %+v", got)
	}

	// filter normalization: times in UTC, type trimmed and uppercased
	if gotFrom.Location() != time.UTC || !gotFrom.Equal(from) {
		t.Fatalf("from not normalized: %v", gotFrom)
	}
	if gotTo.Location() != time.UTC || !gotTo.Equal(to) {
		t.Fatalf("to not normalized: %v", gotTo)
	}
	if gotType != "SIGNUP" {
		t.Fatalf("type not normalized: %q", gotType)
	}
}

func TestActivityList_InvalidRange(t *testing.T) {
	s := NewActivityService(&mockEvents{})

	_, err := s.List(context.Background(), ActivityFilter{
		From: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, errInvalidTimeRange) {
		t.Fatalf("expected errInvalidTimeRange, got %v", err)
	}
}

func TestActivityList_ZeroTimesPassThrough(t *testing.T) {
	var gotFrom, gotTo time.Time
	events := &mockEvents{
		listFn: func(ctx context.Context, from, to time.Time, typ string) ([]models.Event, error) {
			gotFrom, gotTo = from, to
			return nil, nil
		},
	}
	s := NewActivityService(events)

	if _, err := s.List(context.Background(), ActivityFilter{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !gotFrom.IsZero() || !gotTo.IsZero() {
		t.Fatalf("zero times must stay zero: %v %v", gotFrom, gotTo)
	}
}
