// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the production system. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - BatchPlanner: A domain service turning order items into planned job cards
//   - StageCalculator: A pure derivation of order stage from job card progress
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
