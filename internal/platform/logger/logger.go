// Package logger はslogのハンドラー（レベル・形式・出力先）を設定から構築します。
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config はログ設定です。
type Config struct {
	Level    string `yaml:"level"`  // debug | info | warn | error
	Format   string `yaml:"format"` // json | text
	Output   string `yaml:"output"` // stdout | file | both
	FilePath string `yaml:"file_path"`
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ParseLevel はレベル名をslog.Levelに変換します。不明な値はInfoです。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New は設定に従ってロガーを生成します。stdout は標準出力の代わりに使う書き込み先です。
// ファイル出力時は返されたCloserでファイルを閉じてください。
func New(cfg Config, stdout io.Writer) (*slog.Logger, io.Closer, error) {
	var (
		w      io.Writer = stdout
		closer io.Closer = nopCloser{}
	)

	output := strings.ToLower(cfg.Output)
	if output == "file" || output == "both" {
		if cfg.FilePath == "" {
			return nil, nil, fmt.Errorf("log output %q requires file_path", cfg.Output)
		}
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		closer = f
		w = f
		if output == "both" {
			w = io.MultiWriter(stdout, f)
		}
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	var h slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h), closer, nil
}

// Init はロガーを生成してデフォルトロガーに設定します。
func Init(cfg Config) (io.Closer, error) {
	l, closer, err := New(cfg, os.Stdout)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(l)
	return closer, nil
}
