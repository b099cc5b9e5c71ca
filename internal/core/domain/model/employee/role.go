package employee

import (
	"fmt"
	"strings"
	"time"

	"logistics/internal/pkg/errs"
)

// Role selects the labor policy an employee is held to.
type Role int

const (
	RoleUnknown Role = iota
	Driver
	Assistant
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "Unknown",
		Driver:      "Driver",
		Assistant:   "Assistant",
	}
}

func (r Role) Validate() error {
	if r != Driver && r != Assistant {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid crew role", r))
	}
	return nil
}

func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// ParseRole is case-insensitive.
func ParseRole(value string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != RoleUnknown && strings.EqualFold(name, strings.TrimSpace(value)) {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid crew role", value))
}

// MandatoryRest applies to every role once its rest threshold is reached.
const MandatoryRest = 8 * time.Hour

// Policy holds the labor-compliance limits of a role.
type Policy struct {
	WeeklyHoursCeiling float64
	RestThreshold      int
	RestDuration       time.Duration
}

var policies = map[Role]Policy{
	Driver:    {WeeklyHoursCeiling: 40, RestThreshold: 1, RestDuration: MandatoryRest},
	Assistant: {WeeklyHoursCeiling: 60, RestThreshold: 2, RestDuration: MandatoryRest},
}

// PolicyFor returns the zero Policy for an unknown role; callers validate the role first.
func PolicyFor(role Role) Policy {
	return policies[role]
}
