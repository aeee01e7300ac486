package study

import (
	"math"

	"github.com/cardcore/cardcore/internal/client/models"
)

const maxBox = 5

// Percent folds a card list into a single mastery percentage: a stack of
// fresh cards (all box 1) is 0, a fully mastered stack (all box 5) is 100.
// An empty stack reads as 0.
func Percent(cards []*models.Card) int {
	n := len(cards)
	if n == 0 {
		return 0
	}

	sum := 0
	for _, c := range cards {
		sum += c.Box
	}

	p := float64(sum-n) / float64(n*(maxBox-1)) * 100
	p = math.Min(math.Max(p, 0), 100)
	return int(math.Round(p))
}
