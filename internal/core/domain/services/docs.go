// Package services provides domain services that compute across multiple
// aggregates.
//
// The package includes:
//   - PriceCalculator: builds a quote's price breakdown from a pricing rule
//     version, the resolved zone and the request conditions
//
// Domain services are pure: they perform no I/O and never mutate their inputs.
package services
