package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httpclient"
)

const serviceName = "catalog"

// Client fetches products from the catalog API.
type Client struct {
	http    httpclient.Doer
	baseURL string
	logger  *slog.Logger
}

// NewClient creates a catalog client rooted at baseURL.
func NewClient(doer httpclient.Doer, baseURL string, logger *slog.Logger) *Client {
	return &Client{
		http:    doer,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// GetProduct returns the summary of the product with the given id.
func (c *Client) GetProduct(ctx context.Context, id string) (domain.ProductSummary, error) {
	endpoint := c.baseURL + "/products/" + url.PathEscape(id)

	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		if errors.Is(err, httpclient.ErrCircuitOpen) || errors.Is(err, httpclient.ErrTooManyRequests) {
			return domain.ProductSummary{}, apperrors.Unavailable("catalog is temporarily unavailable", err)
		}
		c.logger.WarnContext(ctx, "catalog request failed",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
		return domain.ProductSummary{}, apperrors.Unavailable("catalog request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ProductSummary{}, httpclient.ParseResponseError(resp, serviceName)
	}

	var dto ProductDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return domain.ProductSummary{}, fmt.Errorf("decode catalog product %s: %w", id, err)
	}

	return ToSummary(dto), nil
}
