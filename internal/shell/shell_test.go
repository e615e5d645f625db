package shell_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crudadmin/internal/domain"
	"crudadmin/internal/shell"
)

type countingProducts struct {
	mu    sync.Mutex
	lists int
}

func (c *countingProducts) List(ctx context.Context) ([]domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists++
	return []domain.Product{{ID: 1, Name: "Laptop"}}, nil
}
func (c *countingProducts) Create(context.Context, domain.ProductCreate) (domain.Product, error) {
	return domain.Product{}, nil
}
func (c *countingProducts) Update(context.Context, int, domain.ProductUpdate) (domain.Product, error) {
	return domain.Product{}, nil
}
func (c *countingProducts) Delete(context.Context, int) error { return nil }

func (c *countingProducts) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lists
}

type emptyUsers struct{}

func (emptyUsers) List(context.Context) ([]domain.User, error) { return []domain.User{}, nil }
func (emptyUsers) Create(context.Context, domain.UserCreate) (domain.User, error) {
	return domain.User{}, nil
}
func (emptyUsers) Update(context.Context, int, domain.UserUpdate) (domain.User, error) {
	return domain.User{}, nil
}
func (emptyUsers) Delete(context.Context, int) error { return nil }

func TestShellStartsOnProducts(t *testing.T) {
	s := shell.New(shell.Sources{Products: &countingProducts{}, Users: emptyUsers{}})
	assert.Equal(t, shell.Products, s.Active())
	require.NotNil(t, s.Products())
	assert.Nil(t, s.Users())
}

func TestSwitchingTabsRemounts(t *testing.T) {
	prods := &countingProducts{}
	s := shell.New(shell.Sources{Products: prods, Users: emptyUsers{}})
	<-s.Products().Ready()

	s.Select(shell.Products)
	assert.Equal(t, 1, prods.count(), "selecting the active tab keeps the list")

	s.Select(shell.Users)
	assert.Nil(t, s.Products(), "inactive list is dropped")
	require.NotNil(t, s.Users())
	<-s.Users().Ready()

	s.Select(shell.Products)
	<-s.Products().Ready()
	assert.Equal(t, 2, prods.count(), "returning re-fetches")
}

func TestRemountFetchesAgain(t *testing.T) {
	prods := &countingProducts{}
	s := shell.New(shell.Sources{Products: prods, Users: emptyUsers{}})
	first := s.Products()
	<-first.Ready()
	s.Remount()
	<-s.Products().Ready()
	assert.NotSame(t, first, s.Products())
	assert.Equal(t, 2, prods.count())
}

func TestParseTab(t *testing.T) {
	tab, err := shell.ParseTab("users")
	require.NoError(t, err)
	assert.Equal(t, shell.Users, tab)
	_, err = shell.ParseTab("orders")
	assert.Error(t, err)
}

func TestStoreIsolatesSessions(t *testing.T) {
	st := shell.NewStore(shell.Sources{Products: &countingProducts{}, Users: emptyUsers{}})
	a := st.Get("a")
	b := st.Get("b")
	assert.NotSame(t, a, b)
	assert.Same(t, a, st.Get("a"))

	a.Lock()
	a.Select(shell.Users)
	a.Unlock()
	assert.Equal(t, shell.Products, b.Active())
	assert.Equal(t, 2, st.Len())
}

func TestStoreSweepsIdleSessions(t *testing.T) {
	st := shell.NewStore(shell.Sources{Products: &countingProducts{}, Users: emptyUsers{}})
	st.Get("old")
	time.Sleep(20 * time.Millisecond)
	st.Get("fresh").Lock()
	st.Get("fresh").Unlock()

	assert.Equal(t, 1, st.Sweep(10*time.Millisecond))
	assert.Equal(t, 1, st.Len())
}
