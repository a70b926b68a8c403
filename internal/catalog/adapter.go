package catalog

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/slug"
)

// PlaceholderImage is used when no variant carries a thumbnail.
const PlaceholderImage = "/placeholder-product.jpg"

// ToSummary maps a catalog product onto the storefront's listing view.
// Prices are taken from the first variant and are always in TRY.
func ToSummary(dto ProductDTO) domain.ProductSummary {
	summary := domain.ProductSummary{
		ID:    strconv.FormatInt(dto.ID, 10),
		Slug:  dto.Slug,
		Name:  dto.Name,
		Price: domain.Zero(domain.DefaultCurrency),
		Image: PlaceholderImage,
		Merchant: domain.MerchantRef{
			ID:   strconv.FormatInt(dto.Merchant.ID, 10),
			Name: dto.Merchant.CompanyName,
		},
		Stock: totalStock(dto.Variants),
	}
	if summary.Slug == "" {
		summary.Slug = slug.Generate(dto.Name)
	}

	if len(dto.Variants) > 0 {
		first := dto.Variants[0]
		if price, err := domain.NewMoney(decimal.NewFromFloat(first.Price), domain.DefaultCurrency); err == nil {
			summary.Price = price
		}
		if len(first.Thumbnails) > 0 && first.Thumbnails[0].URL != "" {
			summary.Image = first.Thumbnails[0].URL
		}
	}

	if dto.Statistics != nil {
		summary.Rating = dto.Statistics.AverageRating
		summary.ReviewCount = dto.Statistics.TotalRatingCount
	}

	return summary
}

func totalStock(variants []VariantDTO) int {
	total := 0
	for _, v := range variants {
		if v.Stock > 0 {
			total += v.Stock
		}
	}
	return total
}
