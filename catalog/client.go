package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/levelup-gaming/levelup-api/models"
	"github.com/sirupsen/logrus"
)

// productDTO is the wire shape of the upstream gaming products API.
// Field names are the provider's, not ours.
type productDTO struct {
	Id          int    `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Precio      int    `json:"precio"`
	Stock       int    `json:"stock"`
	Imagen      string `json:"imagen"`
	CategoriaId int    `json:"categoriaId"`
}

func (d productDTO) toModel() models.Product {
	product := models.Product{
		Name:        d.Nombre,
		Description: d.Descripcion,
		Price:       d.Precio,
		Stock:       d.Stock,
		ImageUrl:    d.Imagen,
		CategoryId:  d.CategoriaId,
	}
	product.ID = uint(d.Id)
	return product
}

// Client fetches the product catalog from the remote storefront API.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(10 * time.Second).
			SetHeader("Accept", "application/json"),
	}
}

// FetchProducts pulls the full catalog. An HTTP error status counts as
// a failure so callers fall back to the local cache.
func (c *Client) FetchProducts(ctx context.Context) ([]models.Product, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/api/gaming/productos")
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("catalog: remote API returned status %d", resp.StatusCode())
	}

	var dtos []productDTO
	if err := json.Unmarshal(resp.Body(), &dtos); err != nil {
		return nil, fmt.Errorf("catalog: decoding remote products: %w", err)
	}

	products := make([]models.Product, 0, len(dtos))
	for _, dto := range dtos {
		if dto.Id <= 0 {
			logrus.Warnf("catalog: skipping remote product %q with invalid id %d", dto.Nombre, dto.Id)
			continue
		}
		products = append(products, dto.toModel())
	}
	return products, nil
}
