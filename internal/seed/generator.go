package seed

import (
	"fmt"
	"math/rand/v2"

	"github.com/shopspring/decimal"
)

var (
	categories = []string{"Electronics", "Books", "Home", "Garden", "Toys", "Sports"}
	adjectives = []string{"Compact", "Deluxe", "Classic", "Smart", "Portable", "Rugged"}
	nouns      = []string{"Lamp", "Speaker", "Backpack", "Kettle", "Notebook", "Drone", "Chair"}
	reviewers  = []string{"alice", "bob", "carol", "dave", "erin", "frank", "grace"}
	comments   = map[int]string{
		1: "Broke after a week.",
		2: "Not worth the price.",
		3: "Does the job.",
		4: "Very happy with it.",
		5: "Best purchase this year!",
	}
)

// Generate builds n records with between 0 and maxReviews reviews each.
// The same rng state yields the same catalogue.
func Generate(n, maxReviews int, rng *rand.Rand) []Record {
	records := make([]Record, n)

	for i := range records {
		adjective := adjectives[rng.IntN(len(adjectives))]
		noun := nouns[rng.IntN(len(nouns))]
		cents := 199 + rng.Int64N(99_800)

		rec := Record{
			Name:        fmt.Sprintf("%s %s #%d", adjective, noun, i+1),
			Description: fmt.Sprintf("A %s %s for everyday use.", adjective, noun),
			Price:       decimal.New(cents, -2),
			Category:    categories[rng.IntN(len(categories))],
		}

		if maxReviews > 0 {
			count := rng.IntN(maxReviews + 1)
			for range count {
				rating := 1 + rng.IntN(5)
				rec.Reviews = append(rec.Reviews, ReviewRecord{
					UserName: reviewers[rng.IntN(len(reviewers))],
					Rating:   rating,
					Comment:  comments[rating],
				})
			}
		}

		records[i] = rec
	}

	return records
}
