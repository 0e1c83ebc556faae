// Package match provides name normalization, Levenshtein distance, key
// suggestions for unpaired accessors and type compatibility verdicts for
// mismatched getter/putter pairs.
//
// Key functions:
//   - NormalizeIdent, Words, SnakeCase: identifier folding and splitting
//   - Levenshtein: computes edit distance between strings
//   - RankCandidates / Suggest: nearest keys for "did you mean" hints
//   - ScoreTypeCompatibility: explains how two types relate using go/types
package match
