// Package scoring computes the numeric score and evidence trail for one
// candidate pair.
//
// Score is deterministic and pure: the same two records, mode, and
// parameters always produce the same score and the same evidence order.
// Evidence labels are surfaced to end users, so they stay short and
// human-readable.
package scoring
