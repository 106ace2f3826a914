// Package similarity provides the string-distance primitive and field
// normalizers shared by blocking, scoring, and relation finding.
//
// JaroWinkler is the single bounded similarity measure used across the
// pipeline; Clean is the single normalization applied to record fields at
// ingestion. NYSIIS encodes surnames and given names phonetically for
// blocking keys when the source data does not carry precomputed codes.
package similarity
