package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/cartem-panel/internal/domain/entity"
	"github.com/jhoicas/cartem-panel/internal/domain/repository"
)

type productRepository struct {
	c *Client
}

// NewProductRepository implementa repository.ProductRepository sobre /product.
func NewProductRepository(c *Client) repository.ProductRepository {
	return &productRepository{c: c}
}

// Page el listado es público; el token se envía si hay sesión.
func (r *productRepository) Page(ctx context.Context, token string, q entity.PageQuery) (*entity.Page[entity.Product], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("size", strconv.Itoa(q.Size))
	query.Set("name", q.Search)

	var resp pageResponse[entity.Product]
	if err := r.c.do(ctx, call{
		method: http.MethodGet,
		path:   "/product",
		query:  query,
		token:  token,
	}, &resp); err != nil {
		return nil, err
	}
	return resp.toEntity(), nil
}

func (r *productRepository) Save(ctx context.Context, token string, product *entity.Product) error {
	return r.c.do(ctx, call{
		method: http.MethodPost,
		path:   "/product/save",
		token:  token,
		body:   product,
	}, nil)
}

func (r *productRepository) ChangeStatus(ctx context.Context, token, uid string) error {
	return r.c.do(ctx, call{
		method: http.MethodDelete,
		path:   "/product/change-status/" + url.PathEscape(uid),
		token:  token,
	}, nil)
}

func (r *productRepository) Delete(ctx context.Context, token, uid string) error {
	return r.c.do(ctx, call{
		method: http.MethodDelete,
		path:   "/product/delete/" + url.PathEscape(uid),
		token:  token,
	}, nil)
}

type subcategoryRepository struct {
	c *Client
}

// NewSubcategoryRepository implementa repository.SubcategoryRepository sobre /subcategory.
func NewSubcategoryRepository(c *Client) repository.SubcategoryRepository {
	return &subcategoryRepository{c: c}
}

func (r *subcategoryRepository) GetAll(ctx context.Context, token string) ([]entity.Subcategory, error) {
	var resp subcategoriesResponse
	if err := r.c.do(ctx, call{
		method: http.MethodGet,
		path:   "/subcategory/get-all",
		token:  token,
	}, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
