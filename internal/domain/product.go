package domain

// MerchantRef identifies the seller of a product.
type MerchantRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductSummary is the catalog's listing view of a product.
type ProductSummary struct {
	ID            string      `json:"id" validate:"required"`
	Slug          string      `json:"slug"`
	Name          string      `json:"name" validate:"required"`
	Price         Money       `json:"price"`
	OriginalPrice *Money      `json:"original_price,omitempty"`
	Image         string      `json:"image"`
	Rating        float64     `json:"rating" validate:"gte=0,lte=5"`
	ReviewCount   int         `json:"review_count" validate:"gte=0"`
	Merchant      MerchantRef `json:"merchant"`
	Stock         int         `json:"stock" validate:"gte=0"`
	IsFeatured    bool        `json:"is_featured"`
}

// ProductSnapshot is the part of a summary a line item keeps. It is taken
// when the item is first added and never refreshed.
type ProductSnapshot struct {
	Name     string      `json:"name"`
	Slug     string      `json:"slug,omitempty"`
	Image    string      `json:"image,omitempty"`
	Price    Money       `json:"price"`
	Stock    int         `json:"stock"`
	Merchant MerchantRef `json:"merchant"`
}

// Snapshot copies the fields a cart line needs.
func (p ProductSummary) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		Name:     p.Name,
		Slug:     p.Slug,
		Image:    p.Image,
		Price:    p.Price,
		Stock:    p.Stock,
		Merchant: p.Merchant,
	}
}
