package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussnb/datasets"
	"github.com/YuminosukeSato/gaussnb/metrics"
	"github.com/YuminosukeSato/gaussnb/pkg/log"
	"github.com/YuminosukeSato/gaussnb/preprocessing"
	"github.com/YuminosukeSato/gaussnb/sklearn/naive_bayes"
)

func (a *app) demoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Fit and score a classifier on a generated dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDemo(cmd)
		},
	}

	flags := cmd.Flags()
	flags.Int("samples", 1000, "number of generated samples")
	flags.Int("features", 10, "number of generated features")
	flags.Int("classes", 2, "number of generated classes")
	flags.Uint64("seed", 123, "generator seed")
	flags.Float64("test-size", 0.2, "fraction of rows held out for scoring")
	flags.Uint64("split-seed", 123, "train/test shuffle seed")
	flags.Bool("balance", false, "downsample the majority class before splitting (binary only)")
	flags.Uint64("balance-seed", 123, "balancing seed")
	flags.Bool("standardize", false, "standardise features with statistics of the training split")
	names := map[string]string{
		"data.samples":           "samples",
		"data.features":          "features",
		"data.classes":           "classes",
		"data.seed":              "seed",
		"split.test_size":        "test-size",
		"split.seed":             "split-seed",
		"balance.enabled":        "balance",
		"balance.seed":           "balance-seed",
		"preprocess.standardize": "standardize",
	}
	modelFlags(flags, names)
	a.bind(cmd, names)
	return cmd
}

func (a *app) runDemo(cmd *cobra.Command) error {
	logger := log.GetLoggerWithName("cmd.demo")
	cfg := a.cfg

	gen := datasets.DefaultClassificationConfig()
	gen.NSamples = cfg.Data.Samples
	gen.NFeatures = cfg.Data.Features
	gen.NClasses = cfg.Data.Classes
	gen.Seed = cfg.Data.Seed
	if gen.NInformative > gen.NFeatures {
		gen.NInformative = gen.NFeatures
	}
	X, y, err := datasets.MakeClassification(gen)
	if err != nil {
		return err
	}

	var features, labels mat.Matrix = X, y
	if cfg.Balance.Enabled {
		rng := rand.New(rand.NewPCG(cfg.Balance.Seed, cfg.Balance.Seed))
		bX, bY, report, err := preprocessing.BalanceClasses(X, y, rng)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "class counts: %v -> %v\n", report.Before, report.After)
		features, labels = bX, bY
	}

	split, err := preprocessing.TrainTestSplit(features, labels, cfg.Split.TestSize, cfg.Split.Seed)
	if err != nil {
		return err
	}

	var XTrain, XTest mat.Matrix = split.XTrain, split.XTest
	if cfg.Preprocess.Standardize {
		scaler := preprocessing.NewStandardScalerDefault()
		if XTrain, err = scaler.FitTransform(split.XTrain); err != nil {
			return err
		}
		if XTest, err = scaler.Transform(split.XTest); err != nil {
			return err
		}
	}

	nb := naive_bayes.NewGaussianNB(a.modelOptions()...)
	if err := nb.Fit(XTrain, split.YTrain); err != nil {
		return err
	}
	pred, err := nb.Predict(XTest)
	if err != nil {
		return err
	}
	acc, err := metrics.AccuracyMatrix(split.YTest, pred)
	if err != nil {
		return err
	}

	logger.Info("Demo completed",
		log.SamplesKey, cfg.Data.Samples,
		log.TestSizeKey, cfg.Split.TestSize,
		log.AccuracyKey, acc,
	)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, nb)
	fmt.Fprintf(out, "accuracy: %.4f\n", acc)
	return nil
}
