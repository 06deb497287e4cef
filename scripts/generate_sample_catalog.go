//go:build ignore

package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"catalog-n1/internal/seed"
)

func main() {
	out := flag.String("out", "data/sample_catalog.ndjson.gz", "output file")
	products := flag.Int("products", 50, "number of products")
	maxReviews := flag.Int("max-reviews", 5, "maximum reviews per product")
	randomSeed := flag.Uint64("seed", 1, "random seed")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to create output directory: %v\n", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewPCG(*randomSeed, *randomSeed))
	records := seed.Generate(*products, *maxReviews, rng)

	if err := seed.WriteFile(*out, records); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to write catalogue: %v\n", err)
		os.Exit(1)
	}

	reviews := 0
	for _, r := range records {
		reviews += len(r.Reviews)
	}
	fmt.Printf("Wrote %d products and %d reviews to %s\n", len(records), reviews, *out)
}
