// Package truck models the store truck directory entry and its availability flag.
package truck

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrTruckIsNotConstructed = errors.New("Truck must be created via NewTruck constructor")

// Truck is unavailable while attached to a Scheduled or InTransit delivery.
type Truck struct {
	id          kernel.UUID
	storeID     kernel.UUID
	plateNumber string
	available   bool
	guard       guard.ConstructorGuard
}

// NewTruck returns an available truck.
func NewTruck(id, storeID kernel.UUID, plateNumber string) (*Truck, error) {
	return RestoreTruck(id, storeID, plateNumber, true)
}

func RestoreTruck(id, storeID kernel.UUID, plateNumber string, available bool) (*Truck, error) {
	plateNumber = strings.TrimSpace(plateNumber)

	var plateErr error
	if plateNumber == "" {
		plateErr = errs.NewValueIsRequiredError("plate_number")
	}
	if err := errors.Join(id.Validate(), storeID.Validate(), plateErr); err != nil {
		return nil, err
	}

	return &Truck{
		id:          id,
		storeID:     storeID,
		plateNumber: plateNumber,
		available:   available,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (t *Truck) Validate() error {
	if t == nil {
		return ErrTruckIsNotConstructed
	}
	return t.guard.Validate(ErrTruckIsNotConstructed)
}

func (t *Truck) ID() kernel.UUID      { return t.id }
func (t *Truck) StoreID() kernel.UUID { return t.storeID }
func (t *Truck) PlateNumber() string  { return t.plateNumber }
func (t *Truck) IsAvailable() bool    { return t.available }

func (t *Truck) BelongsTo(storeID kernel.UUID) bool {
	return t.storeID.IsEqual(storeID)
}

// Reserve takes the truck for a delivery.
func (t *Truck) Reserve() error {
	if !t.available {
		return errs.NewAlreadyAssignedError("truck", t.plateNumber)
	}
	t.available = false
	return nil
}

// Release makes the truck available again. Releasing an available truck is a no-op.
func (t *Truck) Release() {
	t.available = true
}
