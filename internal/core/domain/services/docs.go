// Package services provides domain services that orchestrate business
// operations across multiple aggregates of the dispatch engine.
//
// The package includes:
//   - OfficeRanker: orders offices by road distance from a pickup point
//   - ResourceSelector: picks the office, vehicle, driver and workers for an order
//   - Pricing: computes the order quote from distance, vehicle class and crew
//
// Domain services hold logic that spans aggregates and therefore does not
// belong to any single aggregate root.
package services
