package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/coursemart/internal/domain/model"
)

// FulfilmentFacade exposes the subset of application functionality required by the reconciler.
type FulfilmentFacade interface {
	PendingFulfilment(ctx context.Context, limit int) ([]model.Order, error)
	FulfilOrder(ctx context.Context, order *model.Order) ([]model.Enrollment, error)
}

// EnrollmentReconciler retries enrollment and cart cleanup for paid orders
// whose fulfilment did not complete. It never charges again.
type EnrollmentReconciler struct {
	facade       FulfilmentFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs     chan model.Order
	wg       sync.WaitGroup
	cancel   context.CancelFunc
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewEnrollmentReconciler constructs the reconciler worker pool.
func NewEnrollmentReconciler(facade FulfilmentFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *EnrollmentReconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if pollInterval <= 0 {
		pollInterval = 30 * time.Second
	}
	return &EnrollmentReconciler{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
		inFlight:     make(map[string]struct{}),
	}
}

// Start launches background processing.
func (r *EnrollmentReconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *EnrollmentReconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *EnrollmentReconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *EnrollmentReconciler) fetchAndDispatch(ctx context.Context) {
	orders, err := r.facade.PendingFulfilment(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("fetch unfulfilled orders failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		if !r.claim(order.ID) {
			continue
		}
		select {
		case <-ctx.Done():
			r.release(order.ID)
			return
		case r.jobs <- order:
		}
	}
}

// claim marks order as queued so a slow worker does not get the same order twice.
func (r *EnrollmentReconciler) claim(orderID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.inFlight[orderID]; busy {
		return false
	}
	r.inFlight[orderID] = struct{}{}
	return true
}

func (r *EnrollmentReconciler) release(orderID string) {
	r.mu.Lock()
	delete(r.inFlight, orderID)
	r.mu.Unlock()
}

func (r *EnrollmentReconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-r.jobs:
			if !ok {
				return
			}
			r.handleOrder(ctx, order)
		}
	}
}

func (r *EnrollmentReconciler) handleOrder(ctx context.Context, order model.Order) {
	defer r.release(order.ID)

	enrollments, err := r.facade.FulfilOrder(ctx, &order)
	if err != nil {
		r.logger.Error("order fulfilment retry failed",
			slog.String("order_id", order.ID),
			slog.String("user_id", order.UserID),
			slog.String("error", err.Error()),
		)
		return
	}
	r.logger.Info("order fulfilled by reconciler",
		slog.String("order_id", order.ID),
		slog.Int("enrollments", len(enrollments)),
	)
}
