package importer

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WorkbookOptions selects what to read from a workbook.
type WorkbookOptions struct {
	Sheet    string `yaml:"sheet,omitempty"` // empty = first sheet
	Password string `yaml:"password,omitempty"`
}

// XLSXSource reads the formatted cell text of one worksheet.
type XLSXSource struct {
	Options WorkbookOptions
}

// Format returns the source name.
func (s *XLSXSource) Format() string { return "xlsx" }

// Open parses the workbook in r and positions a reader on its sheet.
func (s *XLSXSource) Open(r io.Reader) (RowReader, error) {
	f, err := excelize.OpenReader(r, excelize.Options{Password: s.Options.Password})
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}

	sheet := s.Options.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			_ = f.Close()
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return &xlsxRows{file: f, rows: rows}, nil
}

type xlsxRows struct {
	file *excelize.File
	rows *excelize.Rows
}

func (x *xlsxRows) Next() ([]string, error) {
	if !x.rows.Next() {
		if err := x.rows.Error(); err != nil {
			return nil, fmt.Errorf("reading sheet: %w", err)
		}
		return nil, io.EOF
	}
	cols, err := x.rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRow, err)
	}
	return cols, nil
}

func (x *xlsxRows) Close() error {
	rerr := x.rows.Close()
	ferr := x.file.Close()
	return errors.Join(rerr, ferr)
}
