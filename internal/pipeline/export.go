package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"censuslink/internal/linker"
)

// Assignment records one persistent identity handed to a matched pair.
type Assignment struct {
	Pair  *linker.Candidate
	EgoID string
	New   bool
}

// AssignEgoIDs carries persistent identities across a match run. Pairs in
// tiers up to maxTier scoring at least minScore inherit the earlier
// record's ego id; earlier records without one get fresh sequential ids
// starting at nextID. Both sides of each pair end up tagged.
func AssignEgoIDs(tiers linker.Tiers, maxTier, minScore, nextID int) []Assignment {
	buckets := [][]*linker.Candidate{tiers.Tier1, tiers.Tier2, tiers.Tier3}
	if maxTier < 1 {
		maxTier = 1
	}
	if maxTier > len(buckets) {
		maxTier = len(buckets)
	}

	var assignments []Assignment
	for _, bucket := range buckets[:maxTier] {
		for _, cand := range bucket {
			if cand.Score < minScore {
				continue
			}
			egoid := cand.A.EgoID
			fresh := false
			if egoid == "" {
				egoid = strconv.Itoa(nextID)
				nextID++
				fresh = true
				cand.A.EgoID = egoid
			}
			cand.B.EgoID = egoid
			assignments = append(assignments, Assignment{Pair: cand, EgoID: egoid, New: fresh})
		}
	}
	return assignments
}

var assignmentColumns = []string{"line", "egoid"}

// WriteAssignmentsCSV renders the earlier-side line to ego id mapping
// produced by AssignEgoIDs.
func WriteAssignmentsCSV(w io.Writer, assignments []Assignment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(assignmentColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, a := range assignments {
		if err := cw.Write([]string{a.Pair.A.Line, a.EgoID}); err != nil {
			return fmt.Errorf("write assignment for line %s: %w", a.Pair.A.Line, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

var matchColumns = []string{"tier", "score", "earlier_line", "later_line", "egoid", "evidence"}

// WriteMatchCSV renders accepted cross-census pairs in tier order.
func WriteMatchCSV(w io.Writer, tiers linker.Tiers) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(matchColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, cand := range tiers.All() {
		row := []string{
			strconv.Itoa(cand.Tier),
			strconv.Itoa(cand.Score),
			cand.A.Line,
			cand.B.Line,
			cand.B.EgoID,
			strings.Join(cand.Evidence, "; "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write pair %s: %w", cand.PairID(), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

var dedupColumns = []string{"tier", "score", "line_a", "line_b", "evidence"}

// WriteDedupCSV renders likely duplicate pairs in tier order.
func WriteDedupCSV(w io.Writer, tiers linker.Tiers) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(dedupColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, cand := range tiers.All() {
		row := []string{
			strconv.Itoa(cand.Tier),
			strconv.Itoa(cand.Score),
			cand.A.Line,
			cand.B.Line,
			strings.Join(cand.Evidence, "; "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write pair %s: %w", cand.PairID(), err)
		}
	}
	cw.Flush()
	return cw.Error()
}
