package list

import (
	"context"

	"crudadmin/internal/domain"
	"crudadmin/internal/form"
)

type ProductResource = Resource[domain.Product, domain.ProductCreate, domain.ProductUpdate]

// ProductList owns the product snapshot and its single modal form. Form
// access is not synchronized; the owning shell serializes requests.
type ProductList struct {
	*List[domain.Product, domain.ProductCreate, domain.ProductUpdate]
	form form.ProductForm
}

func NewProductList(res ProductResource) *ProductList {
	return &ProductList{List: New(res, "product", "products")}
}

func (l *ProductList) Form() *form.ProductForm { return &l.form }

func (l *ProductList) OpenCreate() { l.form.OpenCreate() }

func (l *ProductList) OpenEdit(id int) error {
	p, ok := l.Find(id)
	if !ok {
		return ErrNoRecord
	}
	l.form.OpenEdit(p)
	return nil
}

// Submit saves the open form: create appends, edit replaces by id. On
// success the form closes; on failure it stays open and the list is untouched.
func (l *ProductList) Submit(ctx context.Context) error {
	payload, ok := l.form.Submit()
	if !ok {
		return ErrIncomplete
	}
	var err error
	if rec, editing := l.form.Editing(); editing {
		err = l.update(ctx, rec.ID, payload.AsUpdate())
	} else {
		err = l.create(ctx, payload)
	}
	if err != nil {
		return err
	}
	l.form.Close()
	return nil
}
