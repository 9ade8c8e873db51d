package postgres

import (
	"context"
	"testing"
	"time"
)

// Every store call must carry a deadline so no request blocks indefinitely.
func TestWithTimeoutSetsDeadline(t *testing.T) {
	s := &Storage{queryTimeout: 5 * time.Second}

	ctx, cancel := s.withTimeout(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected context with a deadline")
	}
	remaining := time.Until(deadline)
	if remaining <= 0 || remaining > 5*time.Second {
		t.Fatalf("deadline %v out of the configured bound", remaining)
	}
}

func TestWithTimeoutKeepsEarlierDeadline(t *testing.T) {
	s := &Storage{queryTimeout: 5 * time.Second}

	parent, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	ctx, cancel2 := s.withTimeout(parent)
	defer cancel2()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected context with a deadline")
	}
	if time.Until(deadline) > time.Second {
		t.Fatalf("child deadline must not extend the parent's")
	}
}
