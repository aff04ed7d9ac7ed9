package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
	"github.com/YuminosukeSato/gaussnb/pkg/log"
	"github.com/YuminosukeSato/gaussnb/sklearn/naive_bayes"
)

func (a *app) trainCmd() *cobra.Command {
	var (
		dataPath, label, outPath, format string
	)
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Fit a classifier on a CSV file and save its parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(format, outPath)
			if err != nil {
				return err
			}
			ds, err := readDataset(dataPath, label)
			if err != nil {
				return err
			}
			if ds.Y == nil {
				return errors.NewValueError("train", fmt.Sprintf("label column %q not found", label))
			}

			nb := naive_bayes.NewGaussianNB(a.modelOptions()...)
			if err := nb.Fit(ds.X, ds.Y); err != nil {
				return err
			}
			if err := saveModel(nb, outPath, format); err != nil {
				return err
			}

			log.GetLoggerWithName("cmd.train").Info("Model saved",
				"path", outPath,
				"format", format,
			)
			fmt.Fprintln(cmd.OutOrStdout(), nb)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&dataPath, "data", "", "training CSV with a header row")
	flags.StringVar(&label, "label", "label", "name of the label column")
	flags.StringVar(&outPath, "out", "model.json", "output model file")
	flags.StringVar(&format, "format", "", "model format (json, gob); inferred from --out when empty")
	_ = cmd.MarkFlagRequired("data")

	names := map[string]string{}
	modelFlags(flags, names)
	a.bind(cmd, names)
	return cmd
}
