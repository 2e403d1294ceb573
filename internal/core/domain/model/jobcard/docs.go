// Package jobcard provides domain entities and business logic for batch
// execution on the shop floor. It implements the JobCard aggregate root
// with an ordered step sequence, a forward-flow quantity ledger, and FQC
// sampling evaluation.
//
// The package includes:
//   - JobCard: The aggregate root owning identity, batch quantities, and the step sequence
//   - Step: An execution stage with assignments, a checklist, quantities, and optional outward or FQC details
//   - Quantities: An immutable received/processed/rejected record
//   - ParameterSpec and Parameter: FQC measurement definitions and their sample readings
//
// Key business rules:
//   - Steps execute strictly in index order; skipped steps never gate successors
//   - For every step, processed + rejected never exceeds received
//   - A step's received amount flows from the processed output of the nearest
//     preceding non-FQC step, seeded by the card's quantity plus buffer
//   - FQC steps complete only through sampling submission, with the computed
//     disposition explicitly confirmed by the caller
//   - A completed step is immutable; cards are split, never deleted
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package jobcard
