package session

// NextStreak applies a round result to the running streak. A win
// extends it, a loss resets it to zero.
func NextStreak(current int, won bool) int {
	if !won {
		return 0
	}
	if current < 0 {
		current = 0
	}
	return current + 1
}
