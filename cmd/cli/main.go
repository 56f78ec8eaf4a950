package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	config string
	debug  bool
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	var flags rootFlags
	root := &cobra.Command{
		Use:           "review-crawler",
		Short:         "Scrape store reviews and build a cleaned, annotated dataset.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&flags.config, "config", "", "YAML config file (REVIEWS_* env vars override it)")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "debug logging")

	root.AddCommand(newRunCmd(&flags), newProcessCmd(&flags))
	return root
}

func newRunCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Scrape every listing page, then clean, save and report.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(flags.config, flags.debug, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			reviews, run := a.scrape(cmd.Context())
			if err := a.dumpRaw(reviews); err != nil {
				return err
			}
			return a.finish(reviews, &run)
		},
	}
}

func newProcessCmd(flags *rootFlags) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "process --input raw.ndjson",
		Short: "Clean, save and report a raw review dump without scraping.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(flags.config, flags.debug, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			reviews, err := a.loadRaw(input)
			if err != nil {
				return err
			}
			return a.finish(reviews, nil)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "NDJSON dump written by a previous run")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
