package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"outreach_backend/internal/app/di"
)

var refresh bool

// draftCmd は企業名からメールを生成して標準出力に書き出します
var draftCmd = &cobra.Command{
	Use:   "draft <company>",
	Short: "Research a company and draft a sponsorship email",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraft,
}

func init() {
	draftCmd.Flags().BoolVar(&refresh, "refresh", false, "discard cached research before running")
}

func runDraft(cmd *cobra.Command, args []string) error {
	cfg, closer, err := loadConfig()
	if err != nil {
		return err
	}
	defer closer.Close()

	// Ctrl-C で検索・生成の待ちを打ち切ります
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workflow, err := di.NewWorkflow(ctx, cfg, nil)
	if err != nil {
		return err
	}

	email, err := workflow.Run(ctx, args[0], refresh)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), email)
	return nil
}
