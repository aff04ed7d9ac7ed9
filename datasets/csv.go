package datasets

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
)

// Dataset is a numeric table read from CSV.
type Dataset struct {
	// Features は特徴量の列名（ファイル内の順）
	Features []string
	// X は n_samples × n_features
	X *mat.Dense
	// Y is the label column, or nil when the file has none.
	Y *mat.Dense
	// LabelName はラベル列の名前
	LabelName string
}

// ReadCSV reads a CSV file with a header row and numeric cells. The column
// named labelColumn, if present, becomes Y; every other column is a feature.
func ReadCSV(r io.Reader, labelColumn string) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewValueError("ReadCSV", "missing header row")
	}
	if err != nil {
		return nil, errors.Wrap(err, "read CSV header")
	}

	labelIdx := -1
	ds := &Dataset{}
	for i, name := range header {
		name = strings.TrimSpace(name)
		if labelColumn != "" && name == labelColumn {
			labelIdx = i
			ds.LabelName = name
			continue
		}
		ds.Features = append(ds.Features, name)
	}
	if len(ds.Features) == 0 {
		return nil, errors.NewValueError("ReadCSV", "no feature columns")
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read CSV records")
	}
	if len(records) == 0 {
		return nil, errors.NewValueError("ReadCSV", "no data rows")
	}

	nFeatures := len(ds.Features)
	ds.X = mat.NewDense(len(records), nFeatures, nil)
	if labelIdx >= 0 {
		ds.Y = mat.NewDense(len(records), 1, nil)
	}
	converted := make([]bool, len(header))
	for i, rec := range records {
		j := 0
		for k, cell := range rec {
			v, isBool, err := parseCell(cell)
			if err != nil {
				return nil, errors.NewValueError("ReadCSV", fmt.Sprintf("row %d column %q: %v", i+2, header[k], err))
			}
			if isBool && !converted[k] {
				converted[k] = true
				errors.Warn(errors.NewDataConversionWarning("bool", "float64",
					fmt.Sprintf("column %q holds true/false cells, read as 1/0", strings.TrimSpace(header[k]))))
			}
			if k == labelIdx {
				ds.Y.Set(i, 0, v)
				continue
			}
			ds.X.Set(i, j, v)
			j++
		}
	}
	return ds, nil
}

// parseCell は数値セルを読む。true/false は 1/0 として受け付ける。
func parseCell(cell string) (float64, bool, error) {
	cell = strings.TrimSpace(cell)
	v, err := strconv.ParseFloat(cell, 64)
	if err == nil {
		return v, false, nil
	}
	switch strings.ToLower(cell) {
	case "true":
		return 1, true, nil
	case "false":
		return 0, true, nil
	}
	return 0, false, err
}

// WriteCSV writes X (and y, when non-nil) with a header row. Feature names
// default to x0, x1, ... when names is nil.
func WriteCSV(w io.Writer, X mat.Matrix, y mat.Matrix, names []string, labelName string) error {
	n, d := X.Dims()
	if names == nil {
		names = make([]string, d)
		for j := range names {
			names[j] = fmt.Sprintf("x%d", j)
		}
	}
	if len(names) != d {
		return errors.NewDimensionError("WriteCSV", d, len(names), 1)
	}
	if y != nil {
		if r, _ := y.Dims(); r != n {
			return errors.NewDimensionError("WriteCSV", n, r, 0)
		}
	}

	writer := csv.NewWriter(w)
	header := append([]string(nil), names...)
	if y != nil {
		header = append(header, labelName)
	}
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "write CSV header")
	}

	record := make([]string, len(header))
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			record[j] = strconv.FormatFloat(X.At(i, j), 'g', -1, 64)
		}
		if y != nil {
			record[d] = strconv.FormatFloat(y.At(i, 0), 'g', -1, 64)
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrap(err, "write CSV record")
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteLabels writes the first column of y under a single header.
func WriteLabels(w io.Writer, name string, y mat.Matrix) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{name}); err != nil {
		return errors.Wrap(err, "write CSV header")
	}
	r, _ := y.Dims()
	for i := 0; i < r; i++ {
		if err := writer.Write([]string{strconv.FormatFloat(y.At(i, 0), 'g', -1, 64)}); err != nil {
			return errors.Wrap(err, "write CSV record")
		}
	}
	writer.Flush()
	return writer.Error()
}
