package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"outreach_backend/internal/feature/outreach/adapters/customsearch"
	"outreach_backend/internal/platform/secrets"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTemplatesCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("LOG_LEVEL", "error")

	path := filepath.Join(dir, "templates.txt")
	content := "TEMPLATE 1\nTitle: Tech\nSubject: Partner with us\n\nHello [Contact Name],\nWe build race cars.\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	out, err := execute(t, "", "templates", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Subject: Partner with us")
	assert.Contains(t, out, "1 templates parsed from "+path)
}

func TestTemplatesCommand_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LOG_LEVEL", "error")

	_, err := execute(t, "", "templates", "does-not-exist.txt")
	assert.Error(t, err)
}

func TestDraftCommand_DoesNotOpenDatabase(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GOOGLE_SEARCH_ENGINE_ID", "")
	dbPath := filepath.Join(dir, "outreach.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", dbPath)

	_, err := execute(t, "", "draft", "Acme Robotics")
	require.ErrorIs(t, err, customsearch.ErrNotConfigured)
	assert.NoFileExists(t, dbPath)
}

func TestSecretsCommand(t *testing.T) {
	keyring.MockInit()
	t.Chdir(t.TempDir())
	t.Setenv("SMTP_USERNAME", "club@example.edu")
	t.Setenv("SMTP_PASSWORD", "")

	out, err := execute(t, "app-password\n", "secrets", "set", "smtp")
	require.NoError(t, err)
	assert.Contains(t, out, "smtp:club@example.edu")

	pw, err := secrets.Password(secrets.SMTPAccount("club@example.edu"), "SMTP_PASSWORD")
	require.NoError(t, err)
	assert.Equal(t, "app-password", pw)

	_, err = execute(t, "", "secrets", "delete", "smtp")
	require.NoError(t, err)
	_, err = secrets.Password(secrets.SMTPAccount("club@example.edu"), "SMTP_PASSWORD")
	assert.ErrorIs(t, err, secrets.ErrNotFound)
}

func TestKeyringAccount(t *testing.T) {
	t.Setenv("SMTP_USERNAME", "")
	t.Setenv("IMAP_USERNAME", "")

	_, err := keyringAccount("smtp")
	assert.Error(t, err)

	t.Setenv("IMAP_USERNAME", "club@example.edu")
	t.Setenv("IMAP_HOST", "imap.example.edu")
	account, err := keyringAccount("imap")
	require.NoError(t, err)
	assert.Equal(t, "imap:club@example.edu@imap.example.edu", account)

	_, err = keyringAccount("pop3")
	assert.Error(t, err)
}
