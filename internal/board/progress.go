package board

// Progress returns the completed share as a whole percentage, rounded down.
// An empty milestone has no progress.
func Progress(total, completed int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed >= total {
		return 100
	}
	return completed * 100 / total
}

// Complete reports whether every task counted is done.
func Complete(total, completed int) bool {
	return total > 0 && completed >= total
}
