package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
	"github.com/YuminosukeSato/gaussnb/sklearn/naive_bayes"
	"github.com/YuminosukeSato/gaussnb/visualize"
)

func (a *app) plotCmd() *cobra.Command {
	var (
		dataPath, label, outPath string
		feature                  int
	)
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Fit on a CSV file and plot each class's density for one feature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := readDataset(dataPath, label)
			if err != nil {
				return err
			}
			if ds.Y == nil {
				return errors.NewValueError("plot", fmt.Sprintf("label column %q not found", label))
			}
			nb := naive_bayes.NewGaussianNB(a.modelOptions()...)
			if err := nb.Fit(ds.X, ds.Y); err != nil {
				return err
			}
			if err := visualize.PlotClassDensities(nb, ds.X, ds.Y, feature, outPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (feature %s)\n", outPath, ds.Features[feature])
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&dataPath, "data", "", "training CSV with a header row")
	flags.StringVar(&label, "label", "label", "name of the label column")
	flags.IntVar(&feature, "feature", 0, "feature index to plot")
	flags.StringVar(&outPath, "out", "density.png", "output image (.png, .svg, .pdf)")
	_ = cmd.MarkFlagRequired("data")

	names := map[string]string{}
	modelFlags(flags, names)
	a.bind(cmd, names)
	return cmd
}
