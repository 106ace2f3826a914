// Package pipeline orchestrates full linkage runs.
//
// A Runner wires configuration into the blocking, scoring, linking, and
// relation packages and executes the three operations the CLI exposes:
// cross-census matching, same-census duplicate detection, and kinship
// inference against the verified person table. Verified-table mutation is
// guarded by a file lock so concurrent runs cannot interleave writes.
package pipeline
