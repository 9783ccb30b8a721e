package main

import (
	"context"
	"fmt"
	"strings"

	blog "github.com/goliatone/go-blog"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	config   string
	dir      string
	output   string
	logLevel string
	indent   bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "blog-index",
		Short:         "Build the article listing of a markdown blog",
		Long:          "blog-index scans a flat directory of markdown articles and writes their titles, dates and excerpts as a newest-first JSON listing.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, flags)
		},
	}

	persistent := root.PersistentFlags()
	persistent.StringVar(&flags.config, "config", "", "path to a YAML config file")
	persistent.StringVar(&flags.dir, "dir", "", "articles directory (overrides config)")
	persistent.StringVarP(&flags.output, "output", "o", "", `listing destination, "-" for stdout (overrides config)`)
	persistent.StringVar(&flags.logLevel, "log-level", "", "minimum log level (trace, debug, info, warn, error)")
	persistent.BoolVar(&flags.indent, "indent", false, "pretty-print the JSON listing")

	root.AddCommand(
		&cobra.Command{
			Use:   "build",
			Short: "Write the article listing once",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runBuild(cmd, flags)
			},
		},
		&cobra.Command{
			Use:   "watch",
			Short: "Write the listing, then rewrite it whenever an article changes",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWatch(cmd, flags)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "blog-index %s\n", version)
			},
		},
	)
	return root
}

func loadConfig(flags *rootFlags) (blog.Config, error) {
	cfg, err := blog.LoadConfig(flags.config)
	if err != nil {
		return blog.Config{}, fmt.Errorf("loading config: %w", err)
	}
	if dir := strings.TrimSpace(flags.dir); dir != "" {
		cfg.Articles.Dir = dir
	}
	if output := strings.TrimSpace(flags.output); output != "" {
		cfg.Articles.Output = output
	}
	if level := strings.TrimSpace(flags.logLevel); level != "" {
		cfg.Logging.Level = level
	}
	return cfg, nil
}

func newModule(cmd *cobra.Command, flags *rootFlags) (*blog.Module, blog.BuildIndexCommand, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, blog.BuildIndexCommand{}, err
	}
	module, err := blog.New(cfg, blog.WithStdout(cmd.OutOrStdout()))
	if err != nil {
		return nil, blog.BuildIndexCommand{}, fmt.Errorf("configuring blog: %w", err)
	}
	return module, blog.BuildIndexCommand{Output: cfg.Articles.Output, Indent: flags.indent}, nil
}

func runBuild(cmd *cobra.Command, flags *rootFlags) error {
	module, msg, err := newModule(cmd, flags)
	if err != nil {
		return err
	}
	return module.BuildIndex().Execute(cmd.Context(), msg)
}

func runWatch(cmd *cobra.Command, flags *rootFlags) error {
	module, msg, err := newModule(cmd, flags)
	if err != nil {
		return err
	}

	handler := module.BuildIndex()
	if err := handler.Execute(cmd.Context(), msg); err != nil {
		// The next change retries; a broken article should not end the session.
		fmt.Fprintf(cmd.ErrOrStderr(), "blog-index: initial build failed: %v\n", err)
	}

	watcher, err := module.Watcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	return watcher.Run(cmd.Context(), func(ctx context.Context) error {
		return handler.Execute(ctx, msg)
	})
}
