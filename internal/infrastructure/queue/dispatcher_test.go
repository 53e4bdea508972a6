package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestDispatcher_PreservesOrderPerKey(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(3, zerolog.Nop())
	d.Start(ctx)

	var mu sync.Mutex
	var got []int
	done := make(chan struct{})
	for i := 0; i < 50; i++ {
		i := i
		d.Enqueue(Task{Key: "session-a", Name: "n", Run: func(context.Context) error {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			if i == 49 {
				close(done)
			}
			return nil
		}})
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("tasks did not run")
	}
	mu.Lock()
	defer mu.Unlock()
	for i, v := range got {
		if v != i {
			t.Fatalf("expected ordered execution, got %v", got)
		}
	}
}

func TestDispatcher_FailingAndPanickingTasksDoNotStopWorker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(1, zerolog.Nop())
	d.Start(ctx)

	done := make(chan struct{})
	d.Enqueue(Task{Key: "k", Run: func(context.Context) error { return errors.New("boom") }})
	d.Enqueue(Task{Key: "k", Run: func(context.Context) error { panic("boom") }})
	d.Enqueue(Task{Key: "k", Run: func(context.Context) error { close(done); return nil }})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker stopped after a failing task")
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	d := NewDispatcher(1, zerolog.Nop())
	dropped := 0
	d.OnDrop(func(Task) { dropped++ })

	// not started: nothing drains the shard
	for i := 0; i < channelBuffer; i++ {
		if !d.Enqueue(Task{Key: "k", Run: func(context.Context) error { return nil }}) {
			t.Fatalf("enqueue %d rejected before the buffer filled", i)
		}
	}
	if d.Enqueue(Task{Key: "k"}) {
		t.Fatal("expected a full shard to reject the task")
	}
	if dropped != 1 {
		t.Fatalf("expected 1 drop, got %d", dropped)
	}
}

func TestDispatcher_WaitReturnsAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := NewDispatcher(2, zerolog.Nop())
	d.Start(ctx)
	cancel()

	waited := make(chan struct{})
	go func() { d.Wait(); close(waited) }()
	select {
	case <-waited:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after cancel")
	}
}
