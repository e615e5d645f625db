package form

import (
	"slices"
	"strings"

	"crudadmin/internal/domain"
	"crudadmin/internal/validate"
)

// ProductInput is the raw field set posted by the product modal.
type ProductInput struct {
	Name        string
	Description string
	Price       string
	Category    string
	InStock     bool
	TagInput    string
}

type ProductForm struct {
	state    State
	editing  *domain.Product
	data     domain.ProductCreate
	tagInput string
}

func blankProduct() domain.ProductCreate {
	return domain.ProductCreate{Tags: []string{}, InStock: true}
}

func (f *ProductForm) State() State { return f.state }
func (f *ProductForm) IsOpen() bool { return f.state == Open }

func (f *ProductForm) OpenCreate() {
	f.state = Open
	f.editing = nil
	f.data = blankProduct()
	f.tagInput = ""
}

// OpenEdit seeds the working copy from an existing record.
func (f *ProductForm) OpenEdit(p domain.Product) {
	f.state = Open
	f.editing = &p
	f.data = domain.ProductCreate{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Tags:        append([]string{}, p.Tags...),
		InStock:     p.InStock,
	}
	f.tagInput = ""
}

// Close discards the working copy. Cancel and an overlay click both end here.
func (f *ProductForm) Close() {
	*f = ProductForm{}
}

// Editing returns the record being edited, if any.
func (f *ProductForm) Editing() (domain.Product, bool) {
	if f.editing == nil {
		return domain.Product{}, false
	}
	return *f.editing, true
}

// Data is a copy of the working payload.
func (f *ProductForm) Data() domain.ProductCreate {
	d := f.data
	d.Tags = append([]string{}, f.data.Tags...)
	return d
}

func (f *ProductForm) TagInput() string { return f.tagInput }

// Apply copies posted field values onto the working copy. Price coerces to
// zero when it does not parse.
func (f *ProductForm) Apply(in ProductInput) {
	if f.state != Open {
		return
	}
	f.data.Name = in.Name
	f.data.Description = in.Description
	f.data.Price = validate.Number(in.Price)
	f.data.Category = in.Category
	f.data.InStock = in.InStock
	f.tagInput = in.TagInput
}

// AddTag appends the pending tag input. Blank input and exact duplicates
// are ignored; the input is cleared only when a tag was added.
func (f *ProductForm) AddTag() bool {
	if f.state != Open {
		return false
	}
	tag := strings.TrimSpace(f.tagInput)
	if tag == "" || slices.Contains(f.data.Tags, tag) {
		return false
	}
	f.data.Tags = append(f.data.Tags, tag)
	f.tagInput = ""
	return true
}

func (f *ProductForm) RemoveTag(tag string) {
	if f.state != Open {
		return
	}
	f.data.Tags = slices.DeleteFunc(f.data.Tags, func(t string) bool { return t == tag })
}

// Enter handles an Enter keypress inside the modal: with a pending tag it
// adds the tag, otherwise it asks the caller to submit.
func (f *ProductForm) Enter() (submit bool) {
	if strings.TrimSpace(f.tagInput) != "" {
		f.AddTag()
		return false
	}
	return true
}

// Submit returns the payload when name, description and category are all
// non-blank. The form stays open; the owner closes it once the save lands.
func (f *ProductForm) Submit() (domain.ProductCreate, bool) {
	if f.state != Open {
		return domain.ProductCreate{}, false
	}
	if !validate.AllRequired(f.data.Name, f.data.Description, f.data.Category) {
		return domain.ProductCreate{}, false
	}
	return f.Data(), true
}
