package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/cartem-panel/internal/domain"
	"github.com/jhoicas/cartem-panel/internal/domain/entity"
	"github.com/jhoicas/cartem-panel/internal/domain/repository"
)

type personRepository struct {
	c *Client
}

// NewPersonRepository implementa repository.PersonRepository sobre /person.
func NewPersonRepository(c *Client) repository.PersonRepository {
	return &personRepository{c: c}
}

func (r *personRepository) Page(ctx context.Context, token string, q entity.PageQuery) (*entity.Page[entity.Person], error) {
	query := url.Values{}
	query.Set("role", q.Role)
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("size", strconv.Itoa(q.Size))
	query.Set("search", q.Search)

	var resp pageResponse[entity.Person]
	if err := r.c.do(ctx, call{
		method: http.MethodGet,
		path:   "/person/page/",
		query:  query,
		token:  token,
	}, &resp); err != nil {
		return nil, err
	}
	return resp.toEntity(), nil
}

// Create envía el alta; el segmento de la ruta sale del rol (admin o employee).
func (r *personRepository) Create(ctx context.Context, token string, person *entity.Person) error {
	seg, ok := person.Role.CreatePath()
	if !ok {
		return fmt.Errorf("api: rol %q sin alta: %w", person.Role, domain.ErrInvalidInput)
	}
	return r.c.do(ctx, call{
		method: http.MethodPost,
		path:   "/person/" + seg + "/create",
		token:  token,
		body:   person,
	}, nil)
}

func (r *personRepository) ChangeStatus(ctx context.Context, token, email string) error {
	return r.c.do(ctx, call{
		method: http.MethodDelete,
		path:   "/person/change-status/" + url.PathEscape(email),
		token:  token,
	}, nil)
}

func (r *personRepository) Delete(ctx context.Context, token, email string) error {
	return r.c.do(ctx, call{
		method: http.MethodDelete,
		path:   "/person/delete/" + url.PathEscape(email),
		token:  token,
	}, nil)
}
