package catalog

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/catalog"
	"github.com/shopfeed/backend/internal/domain/identity"
	"github.com/shopfeed/backend/internal/domain/shared"
	"github.com/shopfeed/backend/internal/infrastructure/config"
	"github.com/shopfeed/backend/internal/infrastructure/feed"
	"github.com/shopfeed/backend/internal/infrastructure/lock"
	"github.com/shopfeed/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var errImportRunning = shared.NewDomainError(shared.CodeConflict, "Import already in progress for this shop")

// ImportResult summarises a finished import
type ImportResult struct {
	ShopID       uuid.UUID `json:"shop_id"`
	Categories   int       `json:"categories"`
	Goods        int       `json:"goods"`
	ProductInfos int       `json:"product_infos"`
	Parameters   int       `json:"parameters"`
}

// CatalogRepositories groups the repositories an import writes to
type CatalogRepositories struct {
	Shops        catalog.ShopRepository
	Categories   catalog.CategoryRepository
	Goods        catalog.GoodsRepository
	ProductInfos catalog.ProductInfoRepository
	Parameters   catalog.ParameterRepository
}

// Importer replaces a shop's catalog with the content of its published feed
type Importer struct {
	tx       shared.Transactor
	source   feed.Source
	locker   lock.Locker
	sections []SectionHandler
	cfg      config.FeedConfig
	logger   *zap.Logger
}

// NewImporter creates an importer running the standard sections in order:
// shop, categories, goods, parameters
func NewImporter(
	tx shared.Transactor,
	repos CatalogRepositories,
	source feed.Source,
	locker lock.Locker,
	cfg config.FeedConfig,
	logger *zap.Logger,
) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 30 * time.Second
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 5 * time.Minute
	}
	return &Importer{
		tx:     tx,
		source: source,
		locker: locker,
		sections: []SectionHandler{
			&shopSection{shops: repos.Shops},
			&categorySection{categories: repos.Categories},
			&goodsSection{categories: repos.Categories, goods: repos.Goods, infos: repos.ProductInfos, logger: logger},
			&parameterSection{parameters: repos.Parameters},
		},
		cfg:    cfg,
		logger: logger,
	}
}

// Import fetches the feed at rawURL and rewrites the caller's catalog from
// it. Nothing is written unless the feed was fetched and parsed; any failure
// while writing rolls the whole import back.
func (i *Importer) Import(ctx context.Context, caller identity.Caller, rawURL string) (result *ImportResult, err error) {
	if err := caller.RequireShop(); err != nil {
		return nil, err
	}
	feedURL, err := feed.ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartSpan(ctx, "catalog.import",
		attribute.String("shop.owner", caller.UserID.String()),
		attribute.String("feed.scheme", feedURL.Scheme),
	)
	defer telemetry.End(span, &err)

	release, err := i.locker.TryLock(ctx, "import:"+caller.UserID.String(), i.cfg.LockTTL)
	if err != nil {
		if errors.Is(err, lock.ErrLocked) {
			return nil, errImportRunning
		}
		return nil, err
	}
	defer func() {
		if rerr := release(context.WithoutCancel(ctx)); rerr != nil {
			i.logger.Warn("Failed to release import lock", zap.Error(rerr))
		}
	}()

	doc, err := i.load(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	state := newImportState(caller, feedURL.String(), doc)
	err = i.tx.Transaction(ctx, func(ctx context.Context) error {
		for _, section := range i.sections {
			if err := section.Apply(ctx, state); err != nil {
				i.logger.Warn("Import section failed",
					zap.String("section", string(section.Kind())),
					zap.String("user_id", caller.UserID.String()),
					zap.Error(err),
				)
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	i.logger.Info("Catalog imported",
		zap.String("shop_id", state.Result.ShopID.String()),
		zap.Int("categories", state.Result.Categories),
		zap.Int("product_infos", state.Result.ProductInfos),
		zap.Int("parameters", state.Result.Parameters),
	)
	return state.Result, nil
}

// load fetches and decodes the feed within the configured timeout
func (i *Importer) load(ctx context.Context, feedURL *url.URL) (*catalog.Feed, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, i.cfg.FetchTimeout)
	defer cancel()

	data, err := i.source.Fetch(fetchCtx, feedURL)
	if err != nil {
		i.logger.Warn("Feed fetch failed", zap.String("url", feedURL.Redacted()), zap.Error(err))
		return nil, upstreamError(err)
	}
	doc, err := feed.Parse(data)
	if err != nil {
		i.logger.Warn("Feed parse failed", zap.String("url", feedURL.Redacted()), zap.Error(err))
		return nil, upstreamError(err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func upstreamError(err error) error {
	return shared.ErrUpstreamFetch.WithDetail("feed", err.Error())
}
