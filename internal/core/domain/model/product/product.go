// Package product holds the read-only product reference consumed by the capacity ledger.
package product

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product is catalog data owned by an external collaborator. Only the unit space
// matters here: it is snapshotted onto every allocation.
type Product struct {
	id        kernel.UUID
	name      string
	unitSpace kernel.Space
	guard     guard.ConstructorGuard
}

func NewProduct(id kernel.UUID, name string, unitSpace kernel.Space) (*Product, error) {
	p := &Product{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		id.Validate(),
		p.setName(name),
		p.setUnitSpace(unitSpace),
	); err != nil {
		return nil, err
	}
	p.id = id
	return p, nil
}

func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() kernel.UUID         { return p.id }
func (p *Product) Name() string            { return p.name }
func (p *Product) UnitSpace() kernel.Space { return p.unitSpace }

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setUnitSpace(unitSpace kernel.Space) error {
	if !unitSpace.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("unit_space", fmt.Errorf("%s is not greater than 0", unitSpace))
	}
	p.unitSpace = unitSpace
	return nil
}
