// Package verified persists the cross-census person table and applies
// inferred kinship edges to it.
//
// The table is keyed by ego id and carries relation lists (spouse, parents,
// children, siblings, cousins, niblings, grandchildren) stored as
// comma-joined id lists. It is separate from the census record collections:
// records are per-enumeration rows, verified persons are identities that
// survive across enumerations.
//
// Edge application runs in two ordered passes (spouses first, everything
// else second) followed by an inheritance closure that resolves indirect
// relation references through a pending-work queue. Relation lists never
// contain the owning row's own id and are de-duplicated when propagation
// finishes.
package verified
