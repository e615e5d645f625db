// Package api talks to the remote products/users REST service. Every call
// is a single round trip: no retries, no caching, no batching.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"crudadmin/internal/domain"
)

type Client struct {
	base    string
	http    *fiber.Client
	timeout time.Duration
}

type Option func(*Client)

// WithTimeout bounds each call. Zero leaves the transport default (none).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.http.UserAgent = ua }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &fiber.Client{
			UserAgent:   "crudadmin",
			JSONEncoder: json.Marshal,
			JSONDecoder: json.Unmarshal,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL is the root the resources are resolved against.
func (c *Client) BaseURL() string { return c.base }

func (c *Client) Products() *Resource[domain.Product, domain.ProductCreate, domain.ProductUpdate] {
	return &Resource[domain.Product, domain.ProductCreate, domain.ProductUpdate]{c: c, path: "/products", noun: "product"}
}

func (c *Client) Users() *Resource[domain.User, domain.UserCreate, domain.UserUpdate] {
	return &Resource[domain.User, domain.UserCreate, domain.UserUpdate]{c: c, path: "/users", noun: "user"}
}

func (c *Client) agent(method, url string) *fiber.Agent {
	switch method {
	case fiber.MethodPost:
		return c.http.Post(url)
	case fiber.MethodPut:
		return c.http.Put(url)
	case fiber.MethodDelete:
		return c.http.Delete(url)
	default:
		return c.http.Get(url)
	}
}

type call struct {
	op       string
	resource string
	id       int
	method   string
	path     string
	body     any
	out      any
}

func (c *Client) do(ctx context.Context, cl call) error {
	fail := func(kind error, status int, detail string, err error) error {
		return &Error{Op: cl.op, Resource: cl.resource, ID: cl.id, Status: status, Kind: kind, Detail: detail, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return fail(ErrNetwork, 0, "", err)
	}

	a := c.agent(cl.method, c.base+cl.path)
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if cl.body != nil {
		a.JSON(cl.body)
	}
	timeout := c.timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); timeout == 0 || left < timeout {
			timeout = left
		}
	}
	if timeout > 0 {
		a.Timeout(timeout)
	}

	status, body, errs := a.Bytes()
	if len(errs) > 0 {
		return fail(ErrNetwork, 0, "", errors.Join(errs...))
	}
	if status < 200 || status > 299 {
		return fail(kindForStatus(status), status, detailOf(body), nil)
	}
	if cl.out == nil {
		return nil
	}
	if err := json.Unmarshal(body, cl.out); err != nil {
		return fail(ErrMalformed, status, "", err)
	}
	return nil
}

// detailOf pulls the service's {"detail": ...} message out of an error body.
func detailOf(body []byte) string {
	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &env); err != nil || len(env.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(env.Detail, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, env.Detail); err != nil {
		return ""
	}
	return buf.String()
}

func itemPath(path string, id int) string { return path + "/" + strconv.Itoa(id) }
