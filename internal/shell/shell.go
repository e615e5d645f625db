// Package shell holds a browser session's tab state. Only the active tab's
// list is mounted; switching tabs drops the other list's snapshot.
package shell

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"crudadmin/internal/list"
)

type Tab string

const (
	Products Tab = "products"
	Users    Tab = "users"
)

func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case Products, Users:
		return Tab(s), nil
	}
	return "", fmt.Errorf("unknown tab %q", s)
}

// Sources builds fresh lists on mount.
type Sources struct {
	Products list.ProductResource
	Users    list.UserResource
}

type Shell struct {
	mu       sync.Mutex
	src      Sources
	active   Tab
	products *list.ProductList
	users    *list.UserList
	lastSeen atomic.Int64
}

// New starts on the products tab with its list mounted.
func New(src Sources) *Shell {
	s := &Shell{src: src}
	s.touch()
	s.mount(Products)
	return s
}

// Lock serializes a request against this session.
func (s *Shell) Lock() {
	s.mu.Lock()
	s.touch()
}

func (s *Shell) touch() { s.lastSeen.Store(time.Now().UnixNano()) }

func (s *Shell) Unlock() { s.mu.Unlock() }

func (s *Shell) Active() Tab { return s.active }

// Select switches tabs. Selecting the active tab is a no-op.
func (s *Shell) Select(t Tab) {
	if t == s.active {
		return
	}
	s.mount(t)
}

// Remount discards the active list and fetches it again.
func (s *Shell) Remount() { s.mount(s.active) }

func (s *Shell) mount(t Tab) {
	s.active = t
	s.products, s.users = nil, nil
	switch t {
	case Products:
		s.products = list.NewProductList(s.src.Products)
		s.products.Mount()
	case Users:
		s.users = list.NewUserList(s.src.Users)
		s.users.Mount()
	}
}

// Products is the mounted product list, nil while the users tab is active.
func (s *Shell) Products() *list.ProductList { return s.products }

func (s *Shell) Users() *list.UserList { return s.users }

func (s *Shell) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastSeen.Load()))
}
