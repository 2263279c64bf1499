package samplefile

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	domain "gouniform/domain/uniformity"
	"gouniform/internal"
	"gouniform/internal/errors"

	"github.com/xuri/excelize/v2"
)

// Supported file types
const (
	TypeJSON = "json"
	TypeCSV  = "csv"
	TypeXLSX = "xlsx"
)

// Reader loads a sample from a JSON, CSV or XLSX file
type Reader struct {
	filePath string
	fileType string
	logger   *internal.Logger
}

// NewReader creates a reader, inferring the file type from the extension
func NewReader(filePath string) *Reader {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filePath)), ".")
	return &Reader{filePath: filePath, fileType: ext, logger: internal.DefaultLogger.With("samplefile")}
}

// FileType returns the inferred file type
func (r *Reader) FileType() string { return r.fileType }

// ReadSample satisfies ports.SampleReaderPort
func (r *Reader) ReadSample(ctx context.Context) (domain.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch r.fileType {
	case TypeJSON, TypeCSV, TypeXLSX:
	default:
		return nil, errors.UnsupportedFormat(r.fileType)
	}

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.NotFound(fmt.Sprintf("sample file %s", r.filePath))
	}

	start := time.Now()
	var (
		sample domain.Sample
		err    error
	)
	switch r.fileType {
	case TypeJSON:
		sample, err = r.readJSON()
	case TypeCSV:
		sample, err = r.readCSV()
	case TypeXLSX:
		sample, err = r.readXLSX()
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", r.filePath)
	}

	r.logger.Debug("read %d numbers from %s file %s in %.2fms",
		len(sample), strings.ToUpper(r.fileType), r.filePath, float64(time.Since(start).Nanoseconds())/1e6)
	return sample, nil
}

func (r *Reader) readJSON() (domain.Sample, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open JSON file: %w", err)
	}
	defer f.Close()
	return DecodeJSON(f)
}

// DecodeJSON parses a document of the form {"numbers": [...]}.
// Nested arrays are flattened in order.
func DecodeJSON(r io.Reader) (domain.Sample, error) {
	var doc struct {
		Numbers interface{} `json:"numbers"`
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, invalid("malformed JSON document", err)
	}
	if doc.Numbers == nil {
		return nil, errors.InvalidInput(`document has no "numbers" field`)
	}
	if _, ok := doc.Numbers.([]interface{}); !ok {
		return nil, errors.InvalidInput(`"numbers" must be an array`)
	}

	sample := domain.Sample{}
	if err := flatten(doc.Numbers, &sample); err != nil {
		return nil, err
	}
	return sample, nil
}

func invalid(message string, cause error) error {
	return &errors.AppError{Code: errors.CodeInvalidInput, Message: message, Cause: cause}
}

func flatten(v interface{}, out *domain.Sample) error {
	switch t := v.(type) {
	case []interface{}:
		for _, item := range t {
			if err := flatten(item, out); err != nil {
				return err
			}
		}
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return errors.InvalidInput(fmt.Sprintf("number %s out of range", t.String()))
		}
		*out = append(*out, f)
	default:
		return errors.InvalidInput(fmt.Sprintf("non-numeric entry %v in numbers", v))
	}
	return nil
}

func (r *Reader) readCSV() (domain.Sample, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, invalid("malformed CSV file", err)
	}
	return parseRows(rows)
}

func (r *Reader) readXLSX() (domain.Sample, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.InvalidInput("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return parseRows(rows)
}

// parseRows reads every non-empty cell row-major. A first row without any numeric
// cell is treated as a header.
func parseRows(rows [][]string) (domain.Sample, error) {
	sample := domain.Sample{}
	for i, row := range rows {
		if i == 0 && isHeader(row) {
			continue
		}
		for j, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			v, ok := parseCell(cell)
			if !ok {
				return nil, errors.InvalidInput(fmt.Sprintf("row %d column %d: %q is not a finite number", i+1, j+1, cell))
			}
			sample = append(sample, v)
		}
	}
	return sample, nil
}

func isHeader(row []string) bool {
	for _, cell := range row {
		if _, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil {
			return false
		}
	}
	return len(row) > 0
}

// parseCell accepts finite numbers only; NaN and Inf are rejected
func parseCell(cell string) (float64, bool) {
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
