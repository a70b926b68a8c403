package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

type addItemBody struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1,lte=100"`
	Currency  string `json:"currency" validate:"omitempty,iso4217"`
}

func TestValidate_Success(t *testing.T) {
	assert.NoError(t, Validate(addItemBody{ProductID: "p-1", Quantity: 2, Currency: "TRY"}))
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	err := Validate(addItemBody{Quantity: 1})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "is required", valErr.Fields()["product_id"])
}

func TestValidate_OutOfRange(t *testing.T) {
	err := Validate(addItemBody{ProductID: "p-1", Quantity: 101})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be less than or equal to 100", valErr.Fields()["quantity"])
	assert.Contains(t, err.Error(), "field 'quantity'")
}

func TestValidate_Currency(t *testing.T) {
	err := Validate(addItemBody{ProductID: "p-1", Quantity: 1, Currency: "XXXX"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be an ISO 4217 currency code", valErr.Fields()["currency"])
}

func TestDecodeAndValidate(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":"p-1","quantity":3}`))

	var body addItemBody
	require.NoError(t, DecodeAndValidate(req, &body))
	assert.Equal(t, "p-1", body.ProductID)
	assert.Equal(t, 3, body.Quantity)
}

func TestDecodeAndValidate_MalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":`))

	var body addItemBody
	err := DecodeAndValidate(req, &body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestDecodeAndValidate_EmptyBodyStillValidated(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", http.NoBody)

	var body addItemBody
	err := DecodeAndValidate(req, &body)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields(), "product_id")
}
