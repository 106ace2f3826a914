// Command censuslink links person records across historical census
// enumerations: cross-census matching, same-census duplicate detection,
// kinship inference, and maintenance of the verified person table.
package main
