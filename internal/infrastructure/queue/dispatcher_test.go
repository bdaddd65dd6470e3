package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/becas/scholarship-system/internal/core/domain"
)

type recordingService struct {
	mu     sync.Mutex
	events []domain.AuthEvent
	block  chan struct{}
}

func (s *recordingService) Process(_ context.Context, e domain.AuthEvent) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *recordingService) snapshot() []domain.AuthEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuthEvent, len(s.events))
	copy(out, s.events)
	return out
}

func TestDispatcher_PreservesOrderPerIdentifier(t *testing.T) {
	svc := &recordingService{}
	d := NewDispatcher(4, svc, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	for i := 0; i < 50; i++ {
		d.Record(domain.AuthEvent{Type: domain.EventLoginFailed, Identifier: "ana", Reason: fmt.Sprint(i)})
		d.Record(domain.AuthEvent{Type: domain.EventLoginFailed, Identifier: "bruno", Reason: fmt.Sprint(i)})
	}
	cancel()
	d.Wait()

	events := svc.snapshot()
	if len(events) != 100 {
		t.Fatalf("expected 100 events after drain, got %d", len(events))
	}
	next := map[string]int{}
	for _, e := range events {
		if e.Reason != fmt.Sprint(next[e.Identifier]) {
			t.Fatalf("out-of-order event for %s: got %s, want %d", e.Identifier, e.Reason, next[e.Identifier])
		}
		next[e.Identifier]++
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	svc := &recordingService{block: make(chan struct{})}
	d := NewDispatcher(1, svc, zerolog.Nop())

	// Without started workers the single queue fills up and Record must not block.
	for i := 0; i < channelBuffer+10; i++ {
		d.Record(domain.AuthEvent{Type: domain.EventRegistered, Identifier: "ana"})
	}
	if got := len(d.workers[0]); got != channelBuffer {
		t.Fatalf("expected full queue of %d, got %d", channelBuffer, got)
	}
	close(svc.block)
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(0, &recordingService{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
	if d.shardIndex("ana@x.com") != d.shardIndex("ana@x.com") {
		t.Fatalf("shard index must be deterministic")
	}
}
