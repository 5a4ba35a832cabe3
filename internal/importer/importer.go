package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ecommerce-api/internal/domain"
)

type ProductWriter interface {
	Create(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads `name,price` rows and loads them into the catalog.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Run parses CSV rows and creates one product per row. The first row must be
// a header naming at least `name` and `price` columns.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	nameIdx, priceIdx := headerIndex(headers)
	if nameIdx < 0 || priceIdx < 0 {
		return 0, errors.New("csv must have name and price columns")
	}

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		if nameIdx >= len(record) || priceIdx >= len(record) {
			continue
		}

		name := strings.TrimSpace(record[nameIdx])
		if name == "" {
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(record[priceIdx]), 64)
		if err != nil {
			return imported, fmt.Errorf("invalid price for %q: %w", name, err)
		}
		if price < 0 {
			return imported, fmt.Errorf("negative price for %q", name)
		}

		if _, err := i.productRepo.Create(ctx, domain.Product{Name: name, Price: price}); err != nil {
			return imported, fmt.Errorf("create product %q: %w", name, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) (nameIdx, priceIdx int) {
	nameIdx, priceIdx = -1, -1
	for i, h := range headers {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name", "product_name":
			nameIdx = i
		case "price":
			priceIdx = i
		}
	}
	return nameIdx, priceIdx
}
