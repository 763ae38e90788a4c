// Package resource implements the ownership table and conflict-arbitration
// rules that serialize execution against the same external object.
//
// # Arbitration Rules
//
// Evaluated top-down against the current owner of a resource:
//
//  1. No current owner -> allow.
//  2. Same instance (re-entry) -> allow.
//  3. Incoming HIGH against a non-HIGH owner -> override, rate-limited per
//     resource to prevent override storms.
//  4. Incoming CHAINED from the owner's own symphony -> queue.
//  5. Otherwise -> queue, or reject if the resource is configured for
//     strict mode.
package resource
