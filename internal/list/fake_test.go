package list_test

import (
	"context"
	"errors"
	"sync"

	"crudadmin/internal/api"
	"crudadmin/internal/domain"
)

// fakeProducts is an in-memory remote service with switchable failures.
type fakeProducts struct {
	mu        sync.Mutex
	records   []domain.Product
	nextID    int
	listErr   error
	saveErr   error
	deleteErr error
	gate      chan struct{}
	calls     []string
}

func newFakeProducts(recs ...domain.Product) *fakeProducts {
	f := &fakeProducts{nextID: 100}
	f.records = append(f.records, recs...)
	return f
}

func (f *fakeProducts) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeProducts) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeProducts) List(ctx context.Context) ([]domain.Product, error) {
	f.record("list")
	if f.gate != nil {
		<-f.gate
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Product(nil), f.records...), nil
}

func (f *fakeProducts) Create(ctx context.Context, p domain.ProductCreate) (domain.Product, error) {
	f.record("create")
	if f.saveErr != nil {
		return domain.Product{}, f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	rec := domain.Product{ID: f.nextID, Name: p.Name + " (server)", Description: p.Description, Price: p.Price,
		Category: p.Category, Tags: p.Tags, InStock: p.InStock}
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeProducts) Update(ctx context.Context, id int, u domain.ProductUpdate) (domain.Product, error) {
	f.record("update")
	if f.saveErr != nil {
		return domain.Product{}, f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.records {
		if r.ID == id {
			if u.Name != nil {
				r.Name = *u.Name + " (server)"
			}
			if u.Price != nil {
				r.Price = *u.Price
			}
			if u.Tags != nil {
				r.Tags = *u.Tags
			}
			f.records[i] = r
			return r, nil
		}
	}
	return domain.Product{}, &api.Error{Op: "update", Resource: "product", ID: id, Status: 404, Kind: api.ErrNotFound}
}

func (f *fakeProducts) Delete(ctx context.Context, id int) error {
	f.record("delete")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return nil
}

type fakeUsers struct {
	mu      sync.Mutex
	records []domain.User
	lastUp  domain.UserUpdate
	saveErr error
}

func (f *fakeUsers) List(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.User(nil), f.records...), nil
}

func (f *fakeUsers) Create(ctx context.Context, u domain.UserCreate) (domain.User, error) {
	if f.saveErr != nil {
		return domain.User{}, f.saveErr
	}
	rec := domain.User{ID: len(f.records) + 1, Name: u.Name, Email: u.Email}
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeUsers) Update(ctx context.Context, id int, u domain.UserUpdate) (domain.User, error) {
	if f.saveErr != nil {
		return domain.User{}, f.saveErr
	}
	f.lastUp = u
	for i, r := range f.records {
		if r.ID == id {
			r.Name = *u.Name
			r.Email = *u.Email
			f.records[i] = r
			return r, nil
		}
	}
	return domain.User{}, errors.New("missing")
}

func (f *fakeUsers) Delete(ctx context.Context, id int) error { return nil }

var errServer = &api.Error{Op: "list", Resource: "product", Status: 500, Kind: api.ErrServer}
