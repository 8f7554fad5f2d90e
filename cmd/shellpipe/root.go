package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/shellpipe/internal/config"
	"github.com/alexisbeaulieu97/shellpipe/internal/logger"
	"github.com/alexisbeaulieu97/shellpipe/internal/pipeline"
	"github.com/alexisbeaulieu97/shellpipe/internal/shellexec"
	"github.com/alexisbeaulieu97/shellpipe/internal/shelltask"
)

type rootFlags struct {
	verbose  bool
	logLevel string
	noColor  bool

	seriesKeyword   string
	parallelKeyword string
	runKeyword      string
	nameKeyword     string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "shellpipe <pipeline-file> [key=value ...]",
		Short:         "shellpipe executes a declarative series/parallel/shell-task pipeline",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd.Context(), flags, args[0], args[1:])
		},
	}

	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug-level logging")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "disable colored status lines")
	cmd.Flags().StringVar(&flags.seriesKeyword, "series-keyword", "", "override the series classification keyword")
	cmd.Flags().StringVar(&flags.parallelKeyword, "parallel-keyword", "", "override the parallel classification keyword")
	cmd.Flags().StringVar(&flags.runKeyword, "run-keyword", "", "override the run/task classification keyword")
	cmd.Flags().StringVar(&flags.nameKeyword, "name-keyword", "", "override the name property keyword")

	return cmd
}

func runPipeline(ctx context.Context, flags *rootFlags, path string, bindingArgs []string) error {
	level := flags.logLevel
	if flags.verbose {
		level = "debug"
	}
	log := logger.New(level, os.Stderr, !flags.noColor)

	bindings, err := config.ParseBindings(bindingArgs)
	if err != nil {
		return err
	}
	seed := config.ToMap(bindings)

	doc, err := config.Load(path, seed)
	if err != nil {
		return err
	}

	kw := pipeline.DefaultKeywords()
	if flags.seriesKeyword != "" {
		kw.Series = flags.seriesKeyword
	}
	if flags.parallelKeyword != "" {
		kw.Parallel = flags.parallelKeyword
	}
	if flags.runKeyword != "" {
		kw.Run = flags.runKeyword
	}
	if flags.nameKeyword != "" {
		kw.Name = flags.nameKeyword
	}

	task := shelltask.New(shellexec.OSRunner{}, kw, log, flags.noColor)

	root, knownNodes, err := pipeline.BuildRoot(doc, kw, task)
	if err != nil {
		return err
	}

	global := pipeline.NewGlobalContext(seed)
	for name, node := range knownNodes {
		global.RegisterKnownNode(name, node)
	}
	frame := pipeline.RootFrame(global)

	log.Debug().Str("file", path).Msg("pipeline.start")
	success, _, err := pipeline.Run(ctx, root, frame)
	if err != nil {
		return err
	}
	if !success {
		return fmt.Errorf("pipeline failed")
	}
	return nil
}
