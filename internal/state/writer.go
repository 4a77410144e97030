package state

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mobil-koeln/gomate/internal/storage"
)

const writeTimeout = 5 * time.Second

type writeJob struct {
	key   string
	value []byte
}

// writer persists jobs one at a time in the order they were queued
type writer struct {
	store  storage.Store
	logger *slog.Logger

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []writeJob
	busy   bool
	closed bool
	done   chan struct{}
}

func newWriter(store storage.Store, logger *slog.Logger) *writer {
	w := &writer{
		store:  store,
		logger: logger,
		done:   make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)
	go w.run()
	return w
}

func (w *writer) enqueue(j writeJob) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		w.logger.Warn("dropping write after close", "key", j.key)
		return
	}
	w.queue = append(w.queue, j)
	w.cond.Broadcast()
}

func (w *writer) run() {
	defer close(w.done)

	w.mu.Lock()
	for {
		for len(w.queue) == 0 && !w.closed {
			w.cond.Wait()
		}
		if len(w.queue) == 0 {
			w.mu.Unlock()
			return
		}

		j := w.queue[0]
		w.queue = w.queue[1:]
		w.busy = true
		w.mu.Unlock()

		w.write(j)

		w.mu.Lock()
		w.busy = false
		w.cond.Broadcast()
	}
}

func (w *writer) write(j writeJob) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := w.store.Set(ctx, j.key, j.value); err != nil {
		w.logger.Warn("failed to persist preference", "key", j.key, "error", err)
		return
	}
	w.logger.Debug("persisted preference", "key", j.key, "bytes", len(j.value))
}

// flush blocks until every queued job has been attempted
func (w *writer) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for len(w.queue) > 0 || w.busy {
		w.cond.Wait()
	}
}

// close drains the queue and stops the worker
func (w *writer) close() {
	w.mu.Lock()
	w.closed = true
	w.cond.Broadcast()
	w.mu.Unlock()
	<-w.done
}
