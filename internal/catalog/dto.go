package catalog

// ImageDTO is an image attached to a variant or merchant.
type ImageDTO struct {
	ID               int64  `json:"id"`
	OriginalFileName string `json:"originalFileName"`
	AltText          string `json:"altText,omitempty"`
	URL              string `json:"url"`
}

// VariantDTO is one purchasable variant of a catalog product.
type VariantDTO struct {
	ID         int64      `json:"id"`
	ProductID  int64      `json:"productId"`
	Price      float64    `json:"price"`
	Stock      int        `json:"stock"`
	Barcode    string     `json:"barcode,omitempty"`
	SKU        string     `json:"sku,omitempty"`
	Thumbnails []ImageDTO `json:"thumbnails"`
}

// StatisticsDTO carries the product's aggregate ratings.
type StatisticsDTO struct {
	TotalSaleCount   int     `json:"totalSaleCount"`
	TotalRatingCount int     `json:"totalRatingCount"`
	AverageRating    float64 `json:"averageRating"`
	TotalClickCount  int     `json:"totalClickCount"`
}

// MerchantDTO is the seller as the catalog returns it.
type MerchantDTO struct {
	ID          int64     `json:"id"`
	CompanyName string    `json:"companyName"`
	Slug        string    `json:"slug"`
	Logo        *ImageDTO `json:"logo,omitempty"`
}

// ProductDTO is the catalog's product payload.
type ProductDTO struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Description string         `json:"description,omitempty"`
	Status      int            `json:"status"`
	MerchantID  int64          `json:"merchantId"`
	Statistics  *StatisticsDTO `json:"statistics,omitempty"`
	Merchant    MerchantDTO    `json:"merchant"`
	Variants    []VariantDTO   `json:"variants"`
}
