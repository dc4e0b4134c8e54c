package quest

import "fmt"

// Difficulty selects the shape of the generated quest network.
type Difficulty string

const (
	DifficultyVeryEasy Difficulty = "very_easy"
	DifficultyEasy     Difficulty = "easy"
	DifficultyMedium   Difficulty = "medium"
	DifficultyHard     Difficulty = "hard"
)

// ParseDifficulty normalizes a requested difficulty, defaulting to medium.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case DifficultyVeryEasy, DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(s), nil
	case "":
		return DifficultyMedium, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
}

// KeyClueTarget is the exact number of key-clue nodes a valid graph must
// contain for this difficulty.
func (d Difficulty) KeyClueTarget() int {
	switch d {
	case DifficultyVeryEasy:
		return 2
	case DifficultyEasy:
		return 3
	case DifficultyHard:
		return 6
	default:
		return 4
	}
}

// NodeCountHint is the node-count guidance passed to the graph generator.
// It is prompt guidance only; validation does not enforce it.
func (d Difficulty) NodeCountHint() string {
	switch d {
	case DifficultyVeryEasy:
		return "8"
	case DifficultyEasy:
		return "15-20"
	case DifficultyHard:
		return "35-40"
	default:
		return "25-30"
	}
}
