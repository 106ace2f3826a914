// Package linker turns blocked record collections into tiered one-to-one
// matches.
//
// Generate walks blocks in deterministic order and scores each unique pair
// once. Resolve greedily assigns pairs to confidence tiers so that no line
// identifier appears in more than one accepted pair. Boost re-scores
// household co-members of tier-1 anchors; a pair's confidence can only
// improve during boosting.
package linker
