// Package census defines the strongly-typed person record used throughout
// the pipeline, collections with line-identifier indexes, and household
// grouping.
//
// Records are normalized exactly once, when built from a raw field map;
// every later stage reads them without mutation. The one historical column
// quirk (an 1880 transcription labeled the surname column "last-_name") is
// resolved here rather than at use sites.
package census
