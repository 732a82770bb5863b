package notifications

import (
	"context"
	"sync"

	"go.uber.org/multierr"

	pkgerrors "github.com/angelmondragon/homefinderz-backend/pkg/errors"
	"github.com/angelmondragon/homefinderz-backend/pkg/logger"
	"github.com/angelmondragon/homefinderz-backend/pkg/metrics"
)

// DispatcherParams groups dependencies for the price-change fan-out.
type DispatcherParams struct {
	Mailer  Mailer
	Logger  *logger.Logger
	Metrics *metrics.NotificationMetrics
}

// Dispatcher fans price-change notices out to wishing users. Delivery is
// best-effort: a failed send is logged and counted, never allowed to fail
// the caller's write path.
type Dispatcher struct {
	mailer  Mailer
	logg    *logger.Logger
	metrics *metrics.NotificationMetrics
}

// NewDispatcher wires the fan-out dependencies. Metrics are optional.
func NewDispatcher(params DispatcherParams) (*Dispatcher, error) {
	if params.Mailer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "mailer required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &Dispatcher{
		mailer:  params.Mailer,
		logg:    params.Logger,
		metrics: params.Metrics,
	}, nil
}

// DispatchPriceChange sends the notice to every recipient in parallel and
// waits for all sends to settle. The combined error reports which sends
// failed; one failure never aborts the rest of the batch.
func (d *Dispatcher) DispatchPriceChange(ctx context.Context, recipients []string, notice PriceChange) error {
	if len(recipients) == 0 {
		return nil
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, recipient := range recipients {
		wg.Add(1)
		go func(recipient string) {
			defer wg.Done()
			if err := d.mailer.SendPriceChange(ctx, recipient, notice); err != nil {
				d.logg.Error(ctx, "price change mail failed", err)
				d.metrics.IncFailed()
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return
			}
			d.metrics.IncSent()
		}(recipient)
	}
	wg.Wait()

	return multierr.Combine(errs...)
}
