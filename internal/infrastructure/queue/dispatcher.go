package queue

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/careerhub/jobboard-web/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	taskTimeout    = 10 * time.Second
)

// Task is the unit of work the dispatcher runs.
type Task = ports.Task

var _ ports.TaskQueue = (*Dispatcher)(nil)

// Dispatcher routes tasks to a fixed set of workers using consistent hashing
// on the task key, guaranteeing per-session ordering.
type Dispatcher struct {
	workers []chan Task
	log     zerolog.Logger
	wg      sync.WaitGroup
	onDrop  func(Task)
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan Task, numWorkers),
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan Task, channelBuffer)
	}
	return d
}

// OnDrop registers a callback for tasks rejected by a full shard.
func (d *Dispatcher) OnDrop(fn func(Task)) {
	d.onDrop = fn
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has stopped.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands a task to the worker responsible for its key. It never
// blocks the caller: when the shard is full the task is dropped and false
// is returned.
func (d *Dispatcher) Enqueue(t Task) bool {
	select {
	case d.workers[d.shardIndex(t.Key)] <- t:
		return true
	default:
		d.log.Warn().Str("task", t.Name).Msg("dispatcher shard full, task dropped")
		if d.onDrop != nil {
			d.onDrop(t)
		}
		return false
	}
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan Task) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-ch:
			if !ok {
				return
			}
			d.run(ctx, id, t)
		}
	}
}

func (d *Dispatcher) run(ctx context.Context, id int, t Task) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Interface("panic", r).Str("task", t.Name).Int("worker_id", id).Msg("task panicked")
		}
	}()
	tctx, cancel := context.WithTimeout(ctx, taskTimeout)
	defer cancel()
	if err := t.Run(tctx); err != nil {
		d.log.Warn().Err(err).
			Str("task", t.Name).
			Int("worker_id", id).
			Msg("background task failed")
	}
}
