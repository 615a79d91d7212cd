package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0,lte=100"`
	Size      string `json:"size" validate:"max=32"`
}

func decodeTestItem(t *testing.T, body interface{}) error {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/api/cart/items", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	var item testItemRequest
	return DecodeAndValidate(req, &item)
}

func TestProperty_RequiredFieldValidationWorks(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("missing required fields are rejected", prop.ForAll(
		func(includeProduct bool, includeQuantity bool) bool {
			reqMap := make(map[string]interface{})
			if includeProduct {
				reqMap["product_id"] = "8a1e3a4e-4e5b-4a0c-9f67-2d7b0f8e1c11"
			}
			if includeQuantity {
				reqMap["quantity"] = 2
			}

			err := decodeTestItem(t, reqMap)
			if includeProduct && includeQuantity {
				return err == nil
			}
			return err != nil
		},
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_QuantityRangeValidation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("quantity outside 1..100 is rejected", prop.ForAll(
		func(quantity int) bool {
			err := decodeTestItem(t, map[string]interface{}{
				"product_id": "8a1e3a4e-4e5b-4a0c-9f67-2d7b0f8e1c11",
				"quantity":   quantity,
			})
			if quantity >= 1 && quantity <= 100 {
				return err == nil
			}
			return err != nil
		},
		gen.IntRange(-50, 200),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestFormatValidationErrors_UsesJSONNames(t *testing.T) {
	err := decodeTestItem(t, map[string]interface{}{
		"product_id": "not-a-uuid",
		"quantity":   1,
		"size":       strings.Repeat("X", 40),
	})
	require.Error(t, err)

	errs := FormatValidationErrors(err)
	require.Len(t, errs, 2)
	assert.Equal(t, "product_id", errs[0].Field)
	assert.Equal(t, "Must be a valid UUID", errs[0].Message)
	assert.Equal(t, "size", errs[1].Field)
}

func TestDecodeAndValidate_MalformedBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/cart/items", strings.NewReader("{"))
	var item testItemRequest

	err := DecodeAndValidate(req, &item)
	assert.ErrorIs(t, err, ErrMalformedBody)
	assert.Empty(t, FormatValidationErrors(err))
}
