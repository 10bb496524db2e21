package match

// MinSimilarity is the score a known key must reach to be suggested.
const MinSimilarity = 0.6

// Suggest returns the known key closest to unknown after normalization,
// or false if none is similar enough. Ties keep the earlier known key.
func Suggest(unknown string, known []string) (string, bool) {
	norm := NormalizeKey(unknown)
	if norm == "" {
		return "", false
	}

	var (
		best      string
		bestScore float64
	)

	for _, k := range known {
		score := Similarity(norm, NormalizeKey(k))
		if score > bestScore {
			best, bestScore = k, score
		}
	}

	if bestScore < MinSimilarity {
		return "", false
	}

	return best, true
}
