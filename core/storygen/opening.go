package storygen

// DefaultOpening is the built-in opening scene used when no generated
// opening is configured.
func DefaultOpening() Opening {
	return Opening{
		Story:        "You wake on a mossy hillside. Ahead, a dark cave mouth breathes cold air; to the east, a sunlit path winds down between flowering hedgerows.",
		FirstChoice:  "Enter the cave",
		SecondChoice: "Take the sunny path",
	}
}
