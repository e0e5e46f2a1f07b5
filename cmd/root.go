package cmd

import (
	"github.com/pkg/errors"
	"github.com/shd101wyy/k-1/internal/log"
	"github.com/shd101wyy/k-1/kerr"
	"github.com/spf13/cobra"
	"log/slog"
	"strings"
)

var logger = log.DefaultLogger.With("section", "cmd")

type options struct {
	defPath  string
	module   string
	source   string
	logLevel int
}

// NewRootCmd returns the ksort command tree. Every call builds fresh flags.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "ksort [subcommand]",
		Short: "ksort answers subsort, bound, LUB and GLB queries over the sorts of a definition",
		Args:  cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetLevel(slog.Level(opts.logLevel))
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.defPath, "def", "d", "", "path to a YAML definition")
	flags.StringVarP(&opts.module, "module", "m", "", "module to query (defaults to the main module)")
	flags.StringVarP(&opts.source, "source", "s", sourceKore, "declaration source the lattice is built through: kore, minikore or kil")
	flags.IntVarP(&opts.logLevel, "log-level", "l", int(slog.LevelWarn), "log level")
	_ = root.MarkPersistentFlagRequired("def")

	root.AddCommand(
		sortsCmd(opts),
		checkCmd(opts),
		subsortedCmd(opts),
		boundCmd(opts, "upper", "Print the common supersorts of SORT..., sorted", upperBounds),
		boundCmd(opts, "lower", "Print the common subsorts of SORT..., sorted", lowerBounds),
		topCmd(opts, "lub", "Print the least upper bound of SORT..., or none", lub),
		topCmd(opts, "glb", "Print the greatest lower bound of SORT..., or none", glb),
		commonCmd(opts),
	)
	return root
}

// Execute runs root and prints a failure to its error stream
func Execute(root *cobra.Command) error {
	err := root.Execute()
	if err != nil {
		root.PrintErrln("Error:", describe(err))
	}
	return err
}

// describe prints a coded error with its code, keeping the context it was wrapped with
func describe(err error) string {
	kErr, ok := errors.Cause(err).(kerr.KError)
	if !ok {
		return err.Error()
	}
	return strings.TrimSuffix(err.Error(), kErr.Error()) + kerr.FormatWithCode(kErr)
}
