package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Resource is one REST collection: R is the record, C the create payload,
// U the update payload.
type Resource[R, C, U any] struct {
	c    *Client
	path string
	noun string
}

func (r *Resource[R, C, U]) Name() string { return r.noun }

func (r *Resource[R, C, U]) List(ctx context.Context) ([]R, error) {
	var out []R
	err := r.c.do(ctx, call{op: "list", resource: r.noun, method: fiber.MethodGet, path: r.path, out: &out})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []R{}
	}
	return out, nil
}

func (r *Resource[R, C, U]) Get(ctx context.Context, id int) (R, error) {
	var out R
	err := r.c.do(ctx, call{op: "get", resource: r.noun, id: id, method: fiber.MethodGet, path: itemPath(r.path, id), out: &out})
	return out, err
}

func (r *Resource[R, C, U]) Create(ctx context.Context, payload C) (R, error) {
	var out R
	err := r.c.do(ctx, call{op: "create", resource: r.noun, method: fiber.MethodPost, path: r.path, body: payload, out: &out})
	return out, err
}

func (r *Resource[R, C, U]) Update(ctx context.Context, id int, payload U) (R, error) {
	var out R
	err := r.c.do(ctx, call{op: "update", resource: r.noun, id: id, method: fiber.MethodPut, path: itemPath(r.path, id), body: payload, out: &out})
	return out, err
}

func (r *Resource[R, C, U]) Delete(ctx context.Context, id int) error {
	return r.c.do(ctx, call{op: "delete", resource: r.noun, id: id, method: fiber.MethodDelete, path: itemPath(r.path, id)})
}
