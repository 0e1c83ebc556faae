package match

import (
	"sort"
)

// Candidate is a key that might have been meant instead of a target key.
type Candidate struct {
	Key string

	// Distance is the edit distance between the normalized keys.
	Distance int
	// Score is the normalized similarity (0-1, higher is better).
	Score float64
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates scores every key against target.
// Returns candidates sorted by score (descending).
func RankCandidates(target string, keys []string) CandidateList {
	var candidates CandidateList

	targetNorm := NormalizeIdent(target)

	for _, key := range keys {
		if key == target {
			continue
		}

		keyNorm := NormalizeIdent(key)

		candidates = append(candidates, Candidate{
			Key:      key,
			Distance: Levenshtein(keyNorm, targetNorm),
			Score:    Similarity(keyNorm, targetNorm),
		})
	}

	// Sort by score (descending), then by key for determinism
	sort.Sort(candidates)

	return candidates
}

// Suggest returns the closest keys to target within maxDistance edits.
// Ties at the best distance are all returned.
func Suggest(target string, keys []string, maxDistance int) []string {
	ranked := RankCandidates(target, keys).WithinDistance(maxDistance)

	best := ranked.Best()
	if best == nil {
		return nil
	}

	var out []string
	for _, c := range ranked {
		if c.Distance == best.Distance {
			out = append(out, c.Key)
		}
	}

	sort.Strings(out)

	return out
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by key for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Key < c[j].Key
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	best := &c[0]
	for i := range c {
		if c[i].Distance < best.Distance {
			best = &c[i]
		}
	}

	return best
}

// WithinDistance returns candidates at most maxDistance edits away.
func (c CandidateList) WithinDistance(maxDistance int) CandidateList {
	var result CandidateList
	for _, cand := range c {
		if cand.Distance <= maxDistance {
			result = append(result, cand)
		}
	}

	return result
}

// DefaultMaxDistance is the edit distance under which a key is suggested.
const DefaultMaxDistance = 2
