package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrQueueFull is returned by Enqueue when the dispatcher cannot accept
// more jobs. Callers on the request path treat it as a delivery failure,
// never as a reason to fail the request itself.
var ErrQueueFull = errors.New("notification queue full")

// Options tunes the dispatcher. Zero fields get sensible defaults.
type Options struct {
	QueueSize   int
	Attempts    int           // delivery attempts per job
	PerSecond   int           // send rate limit
	SendTimeout time.Duration // per-attempt timeout
	// OnResult, when set, observes the final outcome of every job.
	OnResult func(Job, error)
}

// Dispatcher is a bounded in-process queue with a single delivery worker.
// Jobs are retried with backoff, giving at-least-once delivery toward the
// Sender for as long as the process lives.
type Dispatcher struct {
	sender   Sender
	queue    chan Job
	limiter  *rate.Limiter
	attempts int
	timeout  time.Duration
	onResult func(Job, error)

	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewDispatcher(sender Sender, opts Options) *Dispatcher {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	if opts.Attempts <= 0 {
		opts.Attempts = 3
	}
	if opts.PerSecond <= 0 {
		opts.PerSecond = 10
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = 10 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		sender:   sender,
		queue:    make(chan Job, opts.QueueSize),
		limiter:  rate.NewLimiter(rate.Limit(opts.PerSecond), opts.PerSecond),
		attempts: opts.Attempts,
		timeout:  opts.SendTimeout,
		onResult: opts.OnResult,
		cancel:   cancel,
	}
	d.wg.Add(1)
	go d.run(ctx)
	return d
}

// Enqueue accepts a job without ever blocking the caller.
func (d *Dispatcher) Enqueue(job Job) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrQueueFull
	}
	select {
	case d.queue <- job:
		return nil
	default:
		slog.Warn("notification dropped, queue full", "kind", job.Kind, "email", job.Email)
		return ErrQueueFull
	}
}

// Close stops accepting jobs, drains the queue and waits for the worker.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
	d.cancel()
}

func (d *Dispatcher) run(ctx context.Context) {
	defer d.wg.Done()
	for job := range d.queue {
		if err := d.limiter.Wait(ctx); err != nil {
			return
		}
		err := d.deliver(ctx, job)
		if err != nil {
			slog.Error("notification delivery failed", "kind", job.Kind, "email", job.Email, "err", err)
		}
		if d.onResult != nil {
			d.onResult(job, err)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, job Job) error {
	var lastErr error
	for attempt := 0; attempt < d.attempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * 500 * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
		lastErr = d.send(sendCtx, job)
		cancel()
		if lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func (d *Dispatcher) send(ctx context.Context, job Job) error {
	switch job.Kind {
	case KindRecoveryPassword:
		return d.sender.SendRecoveryPassword(ctx, job.Email, job.Code)
	default:
		return d.sender.SendRegistrationConfirmation(ctx, job.Email, job.Code)
	}
}
