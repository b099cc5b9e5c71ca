// Package employee models crew members (drivers and assistants) and the labor
// policy attached to their role.
//
// Role policy:
//   - Driver: 40h per week, rest after every delivery
//   - Assistant: 60h per week, rest after two consecutive deliveries
//   - mandated rest of 8h for both
//
// An employee is on at most one active delivery at a time (OnDuty).
package employee
