// Package export converts batch output files into Excel workbooks for
// manual review.
package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"deedflow/internal/normalize"
	"deedflow/internal/sink"
)

// BatchExporter builds an .xlsx workbook from a batch's pipe-delimited
// output files, one sheet per stage output.
type BatchExporter struct {
	sink *sink.FileSink
}

// NewBatchExporter creates an exporter over the given output sink.
func NewBatchExporter(s *sink.FileSink) *BatchExporter {
	return &BatchExporter{sink: s}
}

// ExportBatch returns the workbook bytes for a batch. Returns
// domain.ErrBatchNotFound (wrapped) when the batch has no output files.
func (e *BatchExporter) ExportBatch(batch string) ([]byte, error) {
	files, err := e.sink.BatchFiles(batch)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, path := range files {
		sheet := sheetName(batch, path)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("naming sheet %s: %w", sheet, err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("adding sheet %s: %w", sheet, err)
			}
		}
		if err := writeSheet(f, sheet, path); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet, path string) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer in.Close()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	row := 1
	for scanner.Scan() {
		cols := strings.Split(scanner.Text(), normalize.Delimiter)
		cells := make([]interface{}, len(cols))
		for i, c := range cols {
			cells[i] = c
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return fmt.Errorf("cell name for row %d: %w", row, err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("writing row %d of %s: %w", row, sheet, err)
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// excelize rejects sheet names longer than 31 characters.
const maxSheetNameLen = 31

// sheetName derives the stage suffix from an output file name, e.g.
// BATCH01_Legal.txt -> Legal. Names that still exceed the sheet name limit
// are truncated.
func sheetName(batch, path string) string {
	name := strings.TrimSuffix(filepath.Base(path), ".txt")
	if suffix, ok := strings.CutPrefix(name, batch+"_"); ok && suffix != "" {
		name = suffix
	}
	if len(name) > maxSheetNameLen {
		name = name[:maxSheetNameLen]
	}
	return name
}
