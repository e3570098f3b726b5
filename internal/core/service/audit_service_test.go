package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campushub/user-directory/internal/core/domain"
	"github.com/campushub/user-directory/internal/core/ports"
)

type stubAuditRepo struct {
	inserted []*domain.DirectoryEvent
	err      error
}

func (r *stubAuditRepo) Insert(_ context.Context, ev *domain.DirectoryEvent) error {
	if r.err != nil {
		return r.err
	}
	r.inserted = append(r.inserted, ev)
	return nil
}

type stubDedup struct {
	duplicate bool
	checkErr  error
	marked    int
}

func (d *stubDedup) IsDuplicate(context.Context, string, string, time.Time) (bool, error) {
	return d.duplicate, d.checkErr
}

func (d *stubDedup) Mark(context.Context, string, string, time.Time) error {
	d.marked++
	return nil
}

func sampleEvent() ports.DirectoryEventInput {
	return ports.DirectoryEventInput{
		UserID:    "u1",
		Action:    "created",
		Actor:     "admin-1",
		Timestamp: time.Now().UTC(),
	}
}

func TestAuditService_Process(t *testing.T) {
	repo := &stubAuditRepo{}
	dedup := &stubDedup{}
	svc := NewAuditService(repo, dedup, zerolog.Nop())

	if err := svc.Process(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(repo.inserted))
	}
	if dedup.marked != 1 {
		t.Fatalf("dedup key not set")
	}
	got := repo.inserted[0]
	if got.UserID != "u1" || got.Action != domain.ActionCreated || got.Actor != "admin-1" {
		t.Fatalf("event mangled: %+v", got)
	}
}

func TestAuditService_Process_SkipsDuplicates(t *testing.T) {
	repo := &stubAuditRepo{}
	dedup := &stubDedup{duplicate: true}
	svc := NewAuditService(repo, dedup, zerolog.Nop())

	if err := svc.Process(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Fatalf("duplicate was persisted")
	}
	if dedup.marked != 0 {
		t.Fatalf("duplicate re-marked")
	}
}

func TestAuditService_Process_DedupFailureDoesNotDrop(t *testing.T) {
	repo := &stubAuditRepo{}
	dedup := &stubDedup{checkErr: errors.New("redis down")}
	svc := NewAuditService(repo, dedup, zerolog.Nop())

	if err := svc.Process(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("event dropped when dedup store unavailable")
	}
}

func TestAuditService_Process_InsertFailure(t *testing.T) {
	repo := &stubAuditRepo{err: errors.New("mongo down")}
	svc := NewAuditService(repo, &stubDedup{}, zerolog.Nop())

	if err := svc.Process(context.Background(), sampleEvent()); err == nil {
		t.Fatalf("expected error when insert fails")
	}
}
