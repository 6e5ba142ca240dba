// Command outreach はメール生成パイプラインと返信追跡をコマンドラインから実行します。
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"outreach_backend/internal/app/config"
	authentity "outreach_backend/internal/feature/auth/domain/entity"
	crmentity "outreach_backend/internal/feature/crm/domain/entity"
	infradb "outreach_backend/internal/platform/db"
	"outreach_backend/internal/platform/logger"
)

var configPath string

// rootCmd はサブコマンドの親です
var rootCmd = &cobra.Command{
	Use:   "outreach",
	Short: "Sponsorship outreach tools",
	Long: `Generate sponsorship emails and track replies from the command line.

Available subcommands:
  draft         - Research a company and draft a sponsorship email
  templates     - Parse a template file and print the blocks
  track-replies - Mark sent emails as responded when a reply arrived
  secrets       - Store or remove SMTP/IMAP passwords in the OS keychain`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml (default: $CONFIG_PATH or ./config.yaml)")
	rootCmd.AddCommand(draftCmd, templatesCmd, trackRepliesCmd, secretsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig は設定を読み込み、ロガーを初期化します。
func loadConfig() (*config.Config, io.Closer, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	closer, err := logger.Init(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, closer, nil
}

// openDB はCRMと同じDBに接続します。
func openDB() (*gorm.DB, error) {
	return infradb.OpenDB(infradb.LoadConfigFromEnv(),
		&crmentity.Company{}, &crmentity.Template{}, &crmentity.Email{}, &crmentity.Prompt{},
		&authentity.User{},
	)
}
