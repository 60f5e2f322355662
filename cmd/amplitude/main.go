package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-amplitude"
)

var moduleBuilder = amplitude.New

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("amplitude: %v", err)
	}
}

func run(args []string) error {
	root := newRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func newRootCommand() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "amplitude",
		Short:         "Compile course content into a queryable index",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./amplitude.toml)")
	flags.String("content-dir", "", "content root to compile")
	flags.String("output-dir", "", "directory receiving rendered generations")
	flags.Bool("skip-invalid", false, "exclude failing items instead of failing the pass")
	flags.Bool("hard-wraps", false, "render soft line breaks as <br>")
	flags.Bool("unsafe-html", false, "pass raw HTML in markdown through to the output")
	flags.String("log-provider", "", "logger provider (gologger or noop)")
	flags.String("log-level", "", "log level")
	flags.String("log-format", "", "log format (console, json or pretty)")
	flags.Bool("log-add-source", false, "include caller information in log entries")

	setup := func(cmd *cobra.Command) (*amplitude.Module, error) {
		cfg, used, err := loadConfig(cfgFile, cmd.Flags())
		if err != nil {
			return nil, err
		}
		module, err := moduleBuilder(cfg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap module: %w", err)
		}
		if used != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), "using config file:", used)
		}
		if err := module.PruneGenerations(); err != nil {
			return nil, fmt.Errorf("prune generations: %w", err)
		}
		return module, nil
	}

	root.AddCommand(newCompileCommand(setup), newWatchCommand(setup))
	return root
}

type setupFunc func(cmd *cobra.Command) (*amplitude.Module, error)

func newCompileCommand(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "compile",
		Short: "Run a single compilation pass",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := setup(cmd)
			if err != nil {
				return err
			}

			started := time.Now()
			if err := module.Compile(cmd.Context()); err != nil {
				return err
			}
			report(cmd.OutOrStdout(), module, time.Since(started))
			return nil
		},
	}
}

func newWatchCommand(setup setupFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Compile and recompile whenever the content changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := setup(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return module.Watch(ctx)
		},
	}
	cmd.Flags().Duration("debounce", 0, "quiet period before a change triggers a pass")
	return cmd
}

func report(w io.Writer, module *amplitude.Module, elapsed time.Duration) {
	fmt.Fprintf(w, "compiled %d articles, %d exercises, %d courses in %s\n",
		len(module.ArticleIDs()),
		len(module.ExerciseIDs()),
		len(module.Courses()),
		elapsed.Round(time.Millisecond),
	)
	for _, id := range module.ExerciseIDs() {
		exercise, ok := module.GetExercise(id)
		if !ok {
			continue
		}
		languages := make([]string, 0, len(exercise.Code))
		for _, lang := range exercise.Languages() {
			languages = append(languages, lang.String())
		}
		fmt.Fprintf(w, "  exercise %s: %s\n", id, strings.Join(languages, ", "))
	}
}
