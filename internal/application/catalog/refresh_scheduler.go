package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/shopfeed/backend/internal/domain/catalog"
	"github.com/shopfeed/backend/internal/domain/identity"
	"go.uber.org/zap"
)

// FeedImporter imports a feed on behalf of a shop owner
type FeedImporter interface {
	Import(ctx context.Context, caller identity.Caller, rawURL string) (*ImportResult, error)
}

// RefreshScheduler re-imports the stored feed of every shop on a cron spec
type RefreshScheduler struct {
	shops    catalog.ShopRepository
	importer FeedImporter
	spec     string
	cron     *cron.Cron
	logger   *zap.Logger

	mu      sync.Mutex
	started bool
}

// NewRefreshScheduler creates a scheduler. spec uses six fields, seconds
// first ("0 0 3 * * *" runs at 03:00). An empty spec disables refreshing.
func NewRefreshScheduler(shops catalog.ShopRepository, importer FeedImporter, spec string, logger *zap.Logger) *RefreshScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	cl := cronLogger{logger.Sugar()}
	return &RefreshScheduler{
		shops:    shops,
		importer: importer,
		spec:     spec,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger: logger,
	}
}

// Start registers the refresh job and starts the cron loop
func (s *RefreshScheduler) Start() error {
	if s.spec == "" {
		s.logger.Info("Feed refresh disabled")
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, func() { s.RefreshAll(context.Background()) }); err != nil {
		return fmt.Errorf("invalid feed refresh schedule %q: %w", s.spec, err)
	}
	s.cron.Start()
	s.started = true
	s.logger.Info("Feed refresh scheduled", zap.String("spec", s.spec))
	return nil
}

// Stop stops the cron loop and waits for a running refresh until ctx is done
func (s *RefreshScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	started := s.started
	s.started = false
	s.mu.Unlock()
	if !started {
		return nil
	}
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RefreshAll imports the stored feed of every shop. A failing shop is logged
// and does not stop the others.
func (s *RefreshScheduler) RefreshAll(ctx context.Context) (refreshed, failed int) {
	shops, err := s.shops.FindWithURL(ctx)
	if err != nil {
		s.logger.Error("Failed to list shops for feed refresh", zap.Error(err))
		return 0, 0
	}
	for _, shop := range shops {
		owner := identity.NewCaller(shop.UserID, identity.RoleShop)
		result, err := s.importer.Import(ctx, owner, shop.URL)
		if err != nil {
			failed++
			s.logger.Warn("Feed refresh failed",
				zap.String("shop_id", shop.ID.String()),
				zap.String("url", shop.URL),
				zap.Error(err),
			)
			continue
		}
		refreshed++
		s.logger.Debug("Feed refreshed", zap.String("shop_id", shop.ID.String()), zap.Int("product_infos", result.ProductInfos))
	}
	s.logger.Info("Feed refresh finished", zap.Int("refreshed", refreshed), zap.Int("failed", failed))
	return refreshed, failed
}

// cronLogger routes cron's own logging through zap
type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}
