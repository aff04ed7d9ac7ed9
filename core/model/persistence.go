package model

import (
	"encoding/gob"
	"io"
	"os"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
)

// SaveModel はモデルをgob形式でファイルに保存する
//
// 使用例:
//
//	params, err := nb.ExportParams()
//	// ...
//	err = model.SaveModel(params, "model.gob")
func SaveModel(model interface{}, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.NewModelError("SaveModel", "failed to create file", err)
	}
	defer file.Close()

	if err := SaveModelToWriter(model, file); err != nil {
		return err
	}
	return file.Sync()
}

// LoadModel はgob形式のファイルからモデルを読み込む
//
//	var params model.ModelParams
//	err := model.LoadModel(&params, "model.gob")
func LoadModel(model interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.NewModelError("LoadModel", "failed to open file", err)
	}
	defer file.Close()

	return LoadModelFromReader(model, file)
}

// SaveModelToWriter はモデルをio.Writerに保存する
func SaveModelToWriter(model interface{}, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(model); err != nil {
		return errors.NewModelError("SaveModel", "failed to encode model", err)
	}
	return nil
}

// LoadModelFromReader はio.Readerからモデルを読み込む
func LoadModelFromReader(model interface{}, r io.Reader) error {
	if err := gob.NewDecoder(r).Decode(model); err != nil {
		return errors.NewModelError("LoadModel", "failed to decode model", err)
	}
	return nil
}
