package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"moviedex/errs"
	"moviedex/testimonial"
	"strings"

	"go.uber.org/zap"
)

var requiredColumns = []string{"name", "feedback"}

type importResult struct {
	Imported int
	Skipped  int
}

// importer feeds CSV rows through the testimonial use case. Rows the use case
// rejects as invalid are skipped; any other failure stops the import.
type importer struct {
	svc   testimonial.Service
	log   *zap.SugaredLogger
	limit int
}

func (imp *importer) Import(ctx context.Context, r io.Reader) (importResult, error) {
	var res importResult

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	columns, err := parseHeader(reader)
	if err != nil {
		return res, err
	}

	for line := 2; imp.limit <= 0 || res.Imported < imp.limit; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("line %d: %w", line, err)
		}

		_, err = imp.svc.AddTestimonial(ctx, parseRecord(record, columns))
		if errs.ErrorCode(err) == errs.EINVALID {
			imp.log.Warnw("skipping row", "line", line, "reason", errs.ErrorMessage(err))
			res.Skipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("line %d: %w", line, err)
		}

		res.Imported++
	}

	return res, nil
}

func parseHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing %q column in csv header", name)
		}
	}

	return columns, nil
}

func parseRecord(record []string, columns map[string]int) testimonial.Testimonial {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	return testimonial.Testimonial{
		Name:     field("name"),
		Avatar:   field("avatar"),
		Role:     field("role"),
		Feedback: field("feedback"),
	}
}

// discardRepository accepts every write; dry runs use it so rows still go
// through validation.
type discardRepository struct{}

func (discardRepository) CreateTestimonial(_ context.Context, t testimonial.Testimonial) (testimonial.Testimonial, error) {
	return t, nil
}

func (discardRepository) AllTestimonials(context.Context, int) ([]testimonial.Testimonial, error) {
	return []testimonial.Testimonial{}, nil
}
