// Package order provides domain entities and business logic for sales order
// management in the production system. It implements the Order aggregate root
// with its items, the coarse stage state machine, and the Hold/Resume side
// state.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, items, and stage lifecycle
//   - Item: An order line carrying quantities and the manufacturing master data
//   - Stage: The coarse pipeline state machine with an orthogonal OnHold state
//   - RMRequirement: Per-unit raw-material consumption used at planning time
//
// Key business rules:
//   - Every item keeps plannedQty <= orderedQty at all times
//   - The stage pipeline runs New through Completed; administrative overrides
//     may jump anywhere, but derivation from job card progress is monotonic
//   - Holding records the current stage and a mandatory reason; resuming
//     restores the recorded stage
//   - Terminal orders accept no further batch planning
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
