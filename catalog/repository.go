package catalog

import (
	"context"
	"errors"

	"github.com/levelup-gaming/levelup-api/cart"
	"github.com/levelup-gaming/levelup-api/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Remote is the upstream catalog API. Client implements it; tests
// substitute their own.
type Remote interface {
	FetchProducts(ctx context.Context) ([]models.Product, error)
}

type localStore interface {
	SaveAll(ctx context.Context, products []models.Product) error
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, productId int) (models.Product, error)
}

// Repository serves products remote-first with a database fallback:
// a successful remote fetch refreshes the local copy, any remote
// failure (or an empty body) falls back to whatever was cached last.
// A redis layer, when configured, shortcuts reads in between.
//
// Repository implements cart.ProductLookup.
type Repository struct {
	remote Remote
	local  localStore
	cache  *Cache
}

func NewRepository(db *gorm.DB, remote Remote, cache *Cache) *Repository {
	return &Repository{
		remote: remote,
		local:  gormLocal{db: db},
		cache:  cache,
	}
}

func (r *Repository) GetAll(ctx context.Context) ([]models.Product, error) {
	if r.remote != nil {
		products, err := r.remote.FetchProducts(ctx)
		switch {
		case err != nil:
			logrus.Warnf("catalog: remote fetch failed, serving local data: %v", err)
		case len(products) == 0:
			logrus.Warn("catalog: remote returned no products, serving local data")
		default:
			if err := r.local.SaveAll(ctx, products); err != nil {
				logrus.Warnf("catalog: caching remote products locally failed: %v", err)
			}
			r.refreshCache(ctx, products)
			return products, nil
		}
	}

	if r.cache != nil {
		if products, err := r.cache.GetList(ctx); err == nil {
			return products, nil
		} else if !errors.Is(err, errCacheMiss) {
			logrus.Warnf("catalog: redis list read failed: %v", err)
		}
	}

	products, err := r.local.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	r.refreshCache(ctx, products)
	return products, nil
}

func (r *Repository) GetByID(ctx context.Context, productId int) (models.Product, error) {
	if r.cache != nil {
		if product, err := r.cache.GetProduct(ctx, productId); err == nil {
			return product, nil
		} else if !errors.Is(err, errCacheMiss) {
			logrus.Warnf("catalog: redis product read failed: %v", err)
		}
	}

	product, err := r.local.FindByID(ctx, productId)
	if err != nil {
		return models.Product{}, err
	}
	if r.cache != nil {
		if err := r.cache.SetProduct(ctx, product); err != nil {
			logrus.Warnf("catalog: redis product write failed: %v", err)
		}
	}
	return product, nil
}

// Sync forces a remote refresh of the local copy, reporting how many
// products came down.
func (r *Repository) Sync(ctx context.Context) (int, error) {
	if r.remote == nil {
		return 0, errors.New("catalog: no remote API configured")
	}
	products, err := r.remote.FetchProducts(ctx)
	if err != nil {
		return 0, err
	}
	if err := r.local.SaveAll(ctx, products); err != nil {
		return 0, err
	}
	r.refreshCache(ctx, products)
	return len(products), nil
}

// Seed loads the demo catalog when the local store is empty. Used by
// fresh installs so the storefront is never blank.
func (r *Repository) Seed(ctx context.Context) error {
	existing, err := r.local.FindAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	return r.local.SaveAll(ctx, DemoProducts())
}

func (r *Repository) refreshCache(ctx context.Context, products []models.Product) {
	if r.cache == nil {
		return
	}
	if err := r.cache.SetList(ctx, products); err != nil {
		logrus.Warnf("catalog: redis list write failed: %v", err)
	}
}

// gormLocal is the mysql product table behind the repository.
type gormLocal struct {
	db *gorm.DB
}

func (l gormLocal) SaveAll(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	return l.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&products).Error
}

func (l gormLocal) FindAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := l.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (l gormLocal) FindByID(ctx context.Context, productId int) (models.Product, error) {
	var product models.Product
	err := l.db.WithContext(ctx).First(&product, productId).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, cart.ErrProductNotFound
		}
		return models.Product{}, err
	}
	return product, nil
}
