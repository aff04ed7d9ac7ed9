package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/YuminosukeSato/gaussnb/core/model"
	"github.com/YuminosukeSato/gaussnb/datasets"
	"github.com/YuminosukeSato/gaussnb/pkg/errors"
	"github.com/YuminosukeSato/gaussnb/sklearn/naive_bayes"
)

const (
	formatJSON = "json"
	formatGob  = "gob"
)

// resolveFormat returns format, or infers it from the file extension when
// format is empty.
func resolveFormat(format, path string) (string, error) {
	if format == "" {
		if strings.EqualFold(filepath.Ext(path), ".gob") {
			return formatGob, nil
		}
		return formatJSON, nil
	}
	switch format {
	case formatJSON, formatGob:
		return format, nil
	}
	return "", errors.NewValidationError("format", "must be json or gob", format)
}

func readDataset(path, label string) (*datasets.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return datasets.ReadCSV(f, label)
}

func saveModel(nb *naive_bayes.GaussianNB, path, format string) error {
	params, err := nb.ExportParams()
	if err != nil {
		return err
	}
	if format == formatGob {
		return model.SaveModel(params, path)
	}
	data, err := params.ToJSON()
	if err != nil {
		return errors.NewModelError("saveModel", "serialization", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.NewModelError("saveModel", "file_write", err)
	}
	return nil
}

func loadModel(path, format string) (*naive_bayes.GaussianNB, error) {
	params := &model.ModelParams{}
	if format == formatGob {
		if err := model.LoadModel(params, path); err != nil {
			return nil, err
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.NewModelError("loadModel", "file_read", err)
		}
		if err := params.FromJSON(data); err != nil {
			return nil, errors.NewModelError("loadModel", "deserialization", err)
		}
	}
	nb := naive_bayes.NewGaussianNB()
	if err := nb.ImportParams(params); err != nil {
		return nil, err
	}
	return nb, nil
}
