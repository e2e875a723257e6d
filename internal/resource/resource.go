package resource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/saulo-duarte/quiz-proctor/internal/config"
)

var (
	ErrUnknownResource = errors.New("invalid resource type")
	ErrBadBody         = errors.New("invalid request body")
)

// Resource is the admin CRUD surface of one collection.
type Resource interface {
	List(ctx context.Context) (interface{}, error)
	Create(ctx context.Context, body io.Reader) (interface{}, error)
	Update(ctx context.Context, id string, body io.Reader) (interface{}, error)
	Delete(ctx context.Context, id string) error
}

// Collection adapts a typed service to Resource. NewCreate, when set,
// returns the value request bodies are decoded over so defaults survive.
type Collection[T any, C any, U any] struct {
	ListFn    func(ctx context.Context) ([]T, error)
	CreateFn  func(ctx context.Context, dto C) (T, error)
	UpdateFn  func(ctx context.Context, id string, dto U) (T, error)
	DeleteFn  func(ctx context.Context, id string) error
	NewCreate func() C
}

func decode(body io.Reader, dst interface{}) error {
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrBadBody, err)
	}
	if err := config.Validate(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrBadBody, err)
	}
	return nil
}

func (c Collection[T, C, U]) List(ctx context.Context) (interface{}, error) {
	return c.ListFn(ctx)
}

func (c Collection[T, C, U]) Create(ctx context.Context, body io.Reader) (interface{}, error) {
	var dto C
	if c.NewCreate != nil {
		dto = c.NewCreate()
	}
	if err := decode(body, &dto); err != nil {
		return nil, err
	}
	return c.CreateFn(ctx, dto)
}

func (c Collection[T, C, U]) Update(ctx context.Context, id string, body io.Reader) (interface{}, error) {
	var dto U
	if err := decode(body, &dto); err != nil {
		return nil, err
	}
	return c.UpdateFn(ctx, id, dto)
}

func (c Collection[T, C, U]) Delete(ctx context.Context, id string) error {
	return c.DeleteFn(ctx, id)
}

// Registry maps the {resource} path segment to its collection.
type Registry map[string]Resource

func (r Registry) Lookup(name string) (Resource, error) {
	res, ok := r[name]
	if !ok {
		return nil, ErrUnknownResource
	}
	return res, nil
}
