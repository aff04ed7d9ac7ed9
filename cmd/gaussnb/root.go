package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/YuminosukeSato/gaussnb/pkg/config"
	"github.com/YuminosukeSato/gaussnb/pkg/log"
	"github.com/YuminosukeSato/gaussnb/sklearn/naive_bayes"
)

// app is the state shared by every subcommand.
type app struct {
	v          *viper.Viper
	cfg        *config.Config
	configFile string
	// bindings maps a command to its flag-to-key bindings. Only the running
	// command's flags are bound, since several commands reuse flag names.
	bindings map[*cobra.Command]map[string]string
}

func newRootCmd() *cobra.Command {
	a := &app{
		v:        config.New(),
		bindings: map[*cobra.Command]map[string]string{},
	}

	root := &cobra.Command{
		Use:           "gaussnb",
		Short:         "Gaussian Naive Bayes classifier",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (yaml or json)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (json, console)")
	a.bind(root, map[string]string{
		"log.level":  "log-level",
		"log.format": "log-format",
	})

	root.AddCommand(
		a.demoCmd(),
		a.trainCmd(),
		a.predictCmd(),
		a.plotCmd(),
	)
	return root
}

func (a *app) bind(cmd *cobra.Command, names map[string]string) {
	a.bindings[cmd] = names
}

// load binds the running command's flags, reads the merged configuration
// and sets up logging on the command's error stream.
func (a *app) load(cmd *cobra.Command) error {
	root := cmd.Root()
	if err := config.BindFlags(a.v, root.PersistentFlags(), a.bindings[root]); err != nil {
		return err
	}
	if cmd != root {
		if err := config.BindFlags(a.v, cmd.Flags(), a.bindings[cmd]); err != nil {
			return err
		}
	}

	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return log.SetupLogger(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
}

// modelOptions は設定から GaussianNB のオプションを組み立てる
func (a *app) modelOptions() []naive_bayes.Option {
	m := a.cfg.Model
	return []naive_bayes.Option{
		naive_bayes.WithVarSmoothing(m.VarSmoothing),
		naive_bayes.WithStrict(m.Strict),
		naive_bayes.WithNJobs(m.NJobs),
	}
}

// modelFlags registers the hyper-parameter flags shared by demo and train.
func modelFlags(flags *pflag.FlagSet, names map[string]string) {
	flags.Float64("var-smoothing", 0, "fraction of the largest feature variance added to every variance")
	flags.Bool("strict", false, "reject non-finite input and zero variances")
	flags.Int("n-jobs", 1, "prediction workers (<=0 uses every CPU)")
	names["model.var_smoothing"] = "var-smoothing"
	names["model.strict"] = "strict"
	names["model.n_jobs"] = "n-jobs"
}
