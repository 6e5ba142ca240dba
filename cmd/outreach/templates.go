package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"outreach_backend/internal/feature/outreach/adapters/knowledge"
	"outreach_backend/internal/feature/outreach/usecase"
)

// templatesCmd はテンプレートファイルの分割結果を確認します
var templatesCmd = &cobra.Command{
	Use:   "templates [file]",
	Short: "Parse a template file and print the blocks",
	Long: `Parse a template file the same way the pipeline does and print each block.

Without an argument the templates path from the configuration is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTemplates,
}

func runTemplates(cmd *cobra.Command, args []string) error {
	cfg, closer, err := loadConfig()
	if err != nil {
		return err
	}
	defer closer.Close()

	path := cfg.Documents.Templates
	if len(args) == 1 {
		path = args[0]
	}

	// 埋め込みを使わないため embedder は不要
	raw, err := knowledge.NewLoader(nil).ReadText(cmd.Context(), path)
	if err != nil {
		return err
	}

	templates := usecase.ParseTemplates(raw, cfg.Identity)
	out := cmd.OutOrStdout()
	for i, t := range templates {
		fmt.Fprintf(out, "=== Template %d: %s ===\nSubject: %s\n\n%s\n\n", i+1, t.Title, t.Subject, t.Body)
	}
	fmt.Fprintf(out, "%d templates parsed from %s\n", len(templates), path)
	return nil
}
