// Package kernel holds the value objects shared by every aggregate.
//
//   - UUID: identifier value object; the zero value fails Validate
//   - Money: fixed-point monetary amount, two decimal places, never negative
//   - Urgency: the quote and order urgency enumeration
//   - NormalizeBairroName: the canonical form for free-text bairro names used
//     in lookups
//
// All types here are immutable and safe for concurrent use.
package kernel
