package match

// Levenshtein returns the number of single-rune insertions, deletions and
// substitutions that turn a into b.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	// row[i] is the distance between ra[:i] and the prefix of rb seen so far.
	row := make([]int, len(ra)+1)
	for i := range row {
		row[i] = i
	}

	for _, cb := range rb {
		diag := row[0]
		row[0]++

		for i, ca := range ra {
			up := row[i+1]

			cost := 1
			if ca == cb {
				cost = 0
			}

			row[i+1] = min(up+1, row[i]+1, diag+cost)
			diag = up
		}
	}

	return row[len(ra)]
}

// Similarity maps the distance between a and b into [0, 1]; 1 means equal.
func Similarity(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}

	return 1 - float64(Levenshtein(a, b))/float64(longest)
}
