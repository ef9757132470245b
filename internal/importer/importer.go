package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"produtos-alert/internal/domain"
	"produtos-alert/internal/logging"
)

type ProductWriter interface {
	Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
}

// Report summarises one import run.
type Report struct {
	Imported int
	Skipped  []SkippedRow
}

type SkippedRow struct {
	Line   int
	Reason string
}

// CSVImporter loads products from a CSV with name and expiration_date columns.
type CSVImporter struct {
	reader io.Reader
	writer ProductWriter
	logger *zap.Logger
}

func NewCSVImporter(r io.Reader, writer ProductWriter, logger *zap.Logger) *CSVImporter {
	return &CSVImporter{reader: r, writer: writer, logger: logging.OrNop(logger)}
}

// Run creates one product per row. Rows failing validation are skipped and
// reported; a store error stops the run.
func (i *CSVImporter) Run(ctx context.Context) (Report, error) {
	var rows []domain.ProductInput
	if err := gocsv.Unmarshal(i.reader, &rows); err != nil {
		return Report{}, fmt.Errorf("read csv: %w", err)
	}

	var report Report
	for n, row := range rows {
		line := n + 2 // header is line 1
		row.Name = strings.TrimSpace(row.Name)
		row.ExpirationDate = strings.TrimSpace(row.ExpirationDate)

		p, err := i.writer.Create(ctx, row)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidProduct) || errors.Is(err, domain.ErrInvalidDate) {
				i.logger.Warn("importer: skipping row", zap.Int("line", line), zap.Error(err))
				report.Skipped = append(report.Skipped, SkippedRow{Line: line, Reason: err.Error()})
				continue
			}
			return report, fmt.Errorf("create product on line %d: %w", line, err)
		}
		report.Imported++
		i.logger.Debug("importer: created", zap.Int("line", line), zap.Int64("id", p.ID))
	}
	return report, nil
}
