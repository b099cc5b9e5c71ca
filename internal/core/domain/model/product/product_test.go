package product_test

import (
	"testing"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/product"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	unit, _ := kernel.SpaceFromString("12")

	p, err := product.NewProduct(kernel.NewUUID(), " Pallet ", unit)
	require.NoError(t, err)
	assert.Equal(t, "Pallet", p.Name())
	assert.Equal(t, "12", p.UnitSpace().String())
	assert.NoError(t, p.Validate())

	_, err = product.NewProduct(kernel.UUID{}, "", kernel.ZeroSpace())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	var nilProduct *product.Product
	assert.ErrorIs(t, nilProduct.Validate(), product.ErrProductIsNotConstructed)
}
