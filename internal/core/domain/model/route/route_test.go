package route_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoute(t *testing.T) {
	store := kernel.NewUUID()

	r, err := route.NewRoute(kernel.NewUUID(), store, "North loop", "Zone A", 90*time.Minute)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, r.ExpectedHours(), 1e-9)
	assert.True(t, r.BelongsTo(store))
	assert.False(t, r.BelongsTo(kernel.NewUUID()))
	assert.Equal(t, "Zone A", r.Area())

	_, err = route.NewRoute(kernel.NewUUID(), store, " ", "", 0)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
