package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sw33tLie/platescope/pkg/vehicle"
)

// CSV is the dataset file: a header row followed by one row per record, in vehicle.Columns order.
type CSV struct {
	path string
}

func NewCSV(path string) *CSV {
	return &CSV{path: path}
}

func (c *CSV) Path() string { return c.path }

func (c *CSV) LoadExisting(ctx context.Context) ([]string, error) {
	records, err := c.Records(ctx)
	if err != nil {
		return nil, err
	}
	plates := make([]string, 0, len(records))
	for _, r := range records {
		if p := strings.ToUpper(strings.TrimSpace(r.Plate)); p != "" {
			plates = append(plates, p)
		}
	}
	return plates, nil
}

// Records reads the dataset by header name, so files with reordered or extra columns still load.
func (c *CSV) Records(ctx context.Context) ([]vehicle.Record, error) {
	f, err := os.Open(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []vehicle.Record{}, nil
		}
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []vehicle.Record{}, nil
		}
		return nil, fmt.Errorf("reading header of %s: %w", c.path, err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	if _, ok := index[vehicle.Columns[0]]; !ok {
		return nil, fmt.Errorf("%s has no %q column", c.path, vehicle.Columns[0])
	}

	var out []vehicle.Record
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", c.path, err)
		}

		row := make([]string, len(vehicle.Columns))
		for i, col := range vehicle.Columns {
			if j, ok := index[col]; ok && j < len(line) {
				row[i] = line[j]
			}
		}
		r, _ := vehicle.FromRow(row)
		out = append(out, r)
	}
	return out, nil
}

func (c *CSV) Append(_ context.Context, r vehicle.Record) error {
	needsHeader := false
	if fi, err := os.Stat(c.path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		needsHeader = true
	} else if fi.Size() == 0 {
		needsHeader = true
	}

	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if needsHeader {
		if err := w.Write(vehicle.Columns); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Write(r.Row()); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (c *CSV) Close() error { return nil }

// WriteCSV writes records, header first, to w.
func WriteCSV(w io.Writer, records []vehicle.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(vehicle.Columns); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(r.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
