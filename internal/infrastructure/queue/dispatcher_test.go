package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campushub/user-directory/internal/core/ports"
)

type recordingAuditService struct {
	mu     sync.Mutex
	events []ports.DirectoryEventInput
	done   chan struct{}
	want   int
}

func (s *recordingAuditService) Process(_ context.Context, in ports.DirectoryEventInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, in)
	if len(s.events) == s.want {
		close(s.done)
	}
	return nil
}

func TestDispatcher_ProcessesEnqueuedEvents(t *testing.T) {
	svc := &recordingAuditService{done: make(chan struct{}), want: 3}
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for _, id := range []string{"u1", "u2", "u3"} {
		d.Enqueue(ports.DirectoryEventInput{UserID: id, Action: "created", Timestamp: time.Now()})
	}

	select {
	case <-svc.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("events not processed in time")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if len(svc.events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(svc.events))
	}
}

func TestDispatcher_ShardIsDeterministicPerUser(t *testing.T) {
	d := NewDispatcher(4, nil, zerolog.Nop())
	for _, id := range []string{"u1", "u2", "abc", ""} {
		first := d.shardIndex(id)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(id); got != first {
				t.Fatalf("shard for %q not stable: %d vs %d", id, first, got)
			}
		}
	}
}

func TestDispatcher_DefaultsWorkerCount(t *testing.T) {
	d := NewDispatcher(0, nil, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
