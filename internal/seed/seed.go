// Package seed loads demo catalogue data into an empty database.
package seed

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"catalog-n1/internal/model"

	"github.com/shopspring/decimal"
)

// Record is one line of a seed file: a product and its reviews.
type Record struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category,omitempty"`
	Reviews     []ReviewRecord  `json:"reviews,omitempty"`
}

// ReviewRecord is a review inside a Record.
type ReviewRecord struct {
	UserName string `json:"userName"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment,omitempty"`
}

// Loader defines the interface for loading seed files.
type Loader interface {
	// Load reads a gzipped NDJSON seed file.
	Load(ctx context.Context, path string) ([]Record, error)
}

// Product builds a validated product, with its reviews attached, from r.
func (r Record) Product() (*model.Product, error) {
	product, err := model.NewProduct(r.Name, r.Description, r.Price, r.Category)
	if err != nil {
		return nil, fmt.Errorf("product %q: %w", r.Name, err)
	}

	for _, rr := range r.Reviews {
		review, err := model.NewReview(rr.UserName, rr.Rating, rr.Comment)
		if err != nil {
			return nil, fmt.Errorf("review of %q: %w", r.Name, err)
		}
		product.AddReview(*review)
	}
	product.UpdatedAt = product.CreatedAt

	return product, nil
}

// readRecords decodes gzipped NDJSON from src. Blank lines are skipped.
func readRecords(ctx context.Context, src io.Reader) ([]Record, error) {
	gzipReader, err := gzip.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var records []Record
	line := 0
	for scanner.Scan() {
		line++
		if line%10_000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return nil, fmt.Errorf("invalid record on line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	return records, nil
}

// WriteRecords encodes records as gzipped NDJSON into dst.
func WriteRecords(dst io.Writer, records []Record) error {
	gzipWriter := gzip.NewWriter(dst)
	encoder := json.NewEncoder(gzipWriter)

	for i, rec := range records {
		if err := encoder.Encode(rec); err != nil {
			gzipWriter.Close()
			return fmt.Errorf("failed to encode record %d: %w", i, err)
		}
	}

	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("failed to flush gzip stream: %w", err)
	}
	return nil
}
