package order

import (
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// Line is an ordered product with its quantity. finalized is set once the
// non-cancelled allocations of the line cover the ordered quantity.
type Line struct {
	productID kernel.UUID
	quantity  int
	finalized bool
}

func NewLine(productID kernel.UUID, quantity int) (*Line, error) {
	return RestoreLine(productID, quantity, false)
}

func RestoreLine(productID kernel.UUID, quantity int, finalized bool) (*Line, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return &Line{productID: productID, quantity: quantity, finalized: finalized}, nil
}

func (l *Line) ProductID() kernel.UUID { return l.productID }
func (l *Line) Quantity() int          { return l.quantity }
func (l *Line) IsFinalized() bool      { return l.finalized }
