package similarity

import "strings"

// JaroWinkler returns a similarity score in [0, 1] for two strings.
// Input is case-insensitive and whitespace-trimmed. Empty input on either
// side scores 0; equal strings after normalization score 1. The Winkler
// prefix boost applies only above a base similarity of 0.7, scaled by the
// shared prefix up to four characters.
func JaroWinkler(a, b string) float64 {
	s1 := []rune(strings.ToLower(strings.TrimSpace(a)))
	s2 := []rune(strings.ToLower(strings.TrimSpace(b)))

	if len(s1) == 0 || len(s2) == 0 {
		return 0
	}
	if string(s1) == string(s2) {
		return 1
	}

	len1 := len(s1)
	len2 := len(s2)
	window := max(len1, len2)/2 - 1

	matched1 := make([]bool, len1)
	matched2 := make([]bool, len2)

	matches := 0
	for i := 0; i < len1; i++ {
		start := max(0, i-window)
		end := min(i+window+1, len2)
		for j := start; j < end; j++ {
			if s1[i] == s2[j] && !matched2[j] {
				matched1[i] = true
				matched2[j] = true
				matches++
				break
			}
		}
	}

	if matches == 0 {
		return 0
	}

	transpositions := 0
	point := 0
	for i := 0; i < len1; i++ {
		if !matched1[i] {
			continue
		}
		for !matched2[point] {
			point++
		}
		if s1[i] != s2[point] {
			transpositions++
		}
		point++
	}
	t := float64(transpositions) / 2

	m := float64(matches)
	dist := (m/float64(len1) + m/float64(len2) + (m-t)/m) / 3

	prefix := 0
	for i := 0; i < min(4, min(len1, len2)); i++ {
		if s1[i] != s2[i] {
			break
		}
		prefix++
	}

	if dist > 0.7 {
		dist += float64(prefix) * 0.1 * (1 - dist)
	}

	return dist
}
