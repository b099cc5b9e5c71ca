// Package kernel holds the value objects shared by every aggregate of the logistics
// domain.
//
// The package includes:
//   - UUID: entity identifier wrapping github.com/google/uuid
//   - Space: non-negative volumetric quantity backed by github.com/shopspring/decimal,
//     compared with a small tolerance
//   - Actor: identity context (role, home store) of the caller
//   - Event and EventRecorder: envelope and buffer for domain events
//
// Values are immutable; zero values are invalid where a constructor exists.
package kernel
