package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/gaussnb/datasets"
	"github.com/YuminosukeSato/gaussnb/metrics"
	"github.com/YuminosukeSato/gaussnb/pkg/errors"
)

func (a *app) predictCmd() *cobra.Command {
	var (
		modelPath, dataPath, label, outPath, format string
	)
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict labels for a CSV file with a saved model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(format, modelPath)
			if err != nil {
				return err
			}
			nb, err := loadModel(modelPath, format)
			if err != nil {
				return err
			}
			ds, err := readDataset(dataPath, label)
			if err != nil {
				return err
			}
			pred, err := nb.Predict(ds.X)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return errors.Wrapf(err, "create %s", outPath)
				}
				defer f.Close()
				out = f
			}
			if err := datasets.WriteLabels(out, "prediction", pred); err != nil {
				return err
			}

			if ds.Y != nil {
				acc, err := metrics.AccuracyMatrix(ds.Y, pred)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "accuracy: %.4f\n", acc)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&modelPath, "model", "model.json", "saved model file")
	flags.StringVar(&dataPath, "data", "", "CSV with a header row")
	flags.StringVar(&label, "label", "label", "name of the label column, scored when present")
	flags.StringVar(&outPath, "out", "", "write predictions to this file instead of stdout")
	flags.StringVar(&format, "format", "", "model format (json, gob); inferred from --model when empty")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}
