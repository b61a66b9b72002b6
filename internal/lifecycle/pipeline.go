package lifecycle

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/SuperKit/internal/domain/app"
	"github.com/GriffinCanCode/SuperKit/internal/domain/registry"
	"github.com/GriffinCanCode/SuperKit/internal/domain/selection"
	"github.com/GriffinCanCode/SuperKit/internal/infrastructure/logging"
	"github.com/GriffinCanCode/SuperKit/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/SuperKit/internal/routing"
	"github.com/GriffinCanCode/SuperKit/internal/shared/errdefs"
)

// Target is the server apps are mounted into.
type Target interface {
	MountLedger() *Ledger
	SetMountLedger(*Ledger)
	IncludeTable(*routing.Table) error
}

// Pipeline mounts selected apps into a Target.
type Pipeline struct {
	start      string
	loader     registry.Loader
	units      *routing.Units
	discoverer *registry.Discoverer
	logger     *logging.Logger
	metrics    *monitoring.Metrics
}

// NewPipeline creates a pipeline loading descriptors through loader and
// controller units through units. Nil units means routing.DefaultUnits.
func NewPipeline(loader registry.Loader, units *routing.Units, logger *logging.Logger) *Pipeline {
	if units == nil {
		units = routing.DefaultUnits
	}
	logger = logging.OrNop(logger)
	return &Pipeline{
		start:      ".",
		loader:     loader,
		units:      units,
		discoverer: registry.NewDiscoverer(loader, logger),
		logger:     logger.Component("lifecycle"),
	}
}

// WithMetrics adds metrics collection to the pipeline.
func (p *Pipeline) WithMetrics(metrics *monitoring.Metrics) *Pipeline {
	p.metrics = metrics
	p.discoverer.WithMetrics(metrics)
	return p
}

// WithStart sets the directory the project is resolved from. Defaults to the
// working directory.
func (p *Pipeline) WithStart(dir string) *Pipeline {
	p.start = dir
	return p
}

// Mount discovers apps, resolves opts against them and merges each selected
// app into target in ascending name order. Apps already in the target's
// ledger are skipped. It returns the resolved selection.
//
// Selection errors are returned before anything is mounted. A failure while
// mounting aborts the run, leaving earlier apps mounted.
func (p *Pipeline) Mount(ctx context.Context, target Target, opts selection.Options) ([]string, error) {
	started := time.Now()

	discovered, _ := p.discoverer.Discover(ctx, p.start)
	names, err := selection.Resolve(opts, discovered)
	if err != nil {
		p.fail(err)
		return nil, err
	}

	ledger := target.MountLedger()
	if ledger == nil {
		ledger = NewLedger()
		target.SetMountLedger(ledger)
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			p.fail(err)
			return nil, err
		}
		if ledger.Has(name) {
			p.logger.App(name).Debug("App already mounted")
			continue
		}
		if err := p.mountOne(target, ledger, name); err != nil {
			p.fail(err)
			return nil, err
		}
	}

	if p.metrics != nil {
		p.metrics.ObserveMount(time.Since(started))
	}
	p.logger.Info("Apps mounted",
		zap.Strings("apps", names),
		zap.Duration("took", time.Since(started)))

	return names, nil
}

func (p *Pipeline) mountOne(target Target, ledger *Ledger, name string) error {
	factory, err := p.loader.Load(name)
	if err != nil {
		return err
	}

	cfg, err := app.Instantiate(name, factory)
	if err != nil {
		return err
	}

	table, err := cfg.BuildRouter(p.units)
	if err != nil {
		return err
	}

	prefix := cfg.NormalizedPrefix()
	if err := ledger.Commit(name, prefix, func() error {
		return target.IncludeTable(table)
	}); err != nil {
		return err
	}

	if p.metrics != nil {
		p.metrics.IncAppsMounted(name)
	}
	p.logger.App(name).Info("Mounted app",
		zap.String("prefix", prefix),
		zap.Int("routes", table.Len()))
	return nil
}

func (p *Pipeline) fail(err error) {
	p.logger.Error("Mount failed", zap.Error(err))
	if p.metrics != nil {
		p.metrics.IncMountFailures(errorKind(err))
	}
}

// errorKind labels err for the mount failure metric.
func errorKind(err error) string {
	switch {
	case errors.Is(err, errdefs.ErrConfiguration):
		return "configuration"
	case errors.Is(err, errdefs.ErrLoad):
		return "load"
	case errors.Is(err, errdefs.ErrState):
		return "state"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}
