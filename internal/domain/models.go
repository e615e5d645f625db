package domain

type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	InStock     bool      `json:"in_stock"`
	CreatedAt   Timestamp `json:"created_at"`
}

func (p Product) Key() int { return p.ID }

// ProductCreate is the payload for POST /products.
type ProductCreate struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	InStock     bool     `json:"in_stock"`
}

// ProductUpdate is merged server side; nil fields are left unchanged.
type ProductUpdate struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	InStock     *bool     `json:"in_stock,omitempty"`
}

// AsUpdate sets every field of the update from a full create payload.
func (p ProductCreate) AsUpdate() ProductUpdate {
	tags := append([]string{}, p.Tags...)
	return ProductUpdate{
		Name:        &p.Name,
		Description: &p.Description,
		Price:       &p.Price,
		Category:    &p.Category,
		Tags:        &tags,
		InStock:     &p.InStock,
	}
}
