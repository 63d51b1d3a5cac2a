package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/levelup-gaming/levelup-api/models"
	"github.com/redis/go-redis/v9"
)

var errCacheMiss = errors.New("catalog: cache miss")

const (
	listKey    = "catalog:products"
	productKey = "catalog:product:%d"
)

// Cache is the redis hot layer in front of the database. Everything in
// it is disposable; a miss just falls through to mysql.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) GetList(ctx context.Context) ([]models.Product, error) {
	raw, err := c.rdb.Get(ctx, listKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errCacheMiss
		}
		return nil, err
	}
	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Cache) SetList(ctx context.Context, products []models.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listKey, raw, c.ttl).Err()
}

func (c *Cache) GetProduct(ctx context.Context, productId int) (models.Product, error) {
	raw, err := c.rdb.Get(ctx, fmt.Sprintf(productKey, productId)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Product{}, errCacheMiss
		}
		return models.Product{}, err
	}
	var product models.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (c *Cache) SetProduct(ctx context.Context, product models.Product) error {
	raw, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, fmt.Sprintf(productKey, product.ID), raw, c.ttl).Err()
}

// Invalidate drops the cached list. Per-product entries age out on
// their own TTL.
func (c *Cache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, listKey).Err()
}
