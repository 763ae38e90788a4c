// Package sequtil holds the orchestration runtime's small, pure admission
// helpers: name parsing, instance-id minting, canonical request hashing, and
// execution-context assembly. Kept separate from sequence so that config's
// YAML loader can stay independent of both without an import cycle.
package sequtil
