package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func setCredentialEnv(t *testing.T, address, password, recipient string) {
	t.Helper()
	vars := map[string]string{
		"EMAIL_ADDRESS":   address,
		"EMAIL_PASSWORD":  password,
		"RECIPIENT_EMAIL": recipient,
	}
	for key, value := range vars {
		t.Setenv(key, value)
		if value == "" {
			os.Unsetenv(key)
		}
	}
}

func TestLoadCredentials(t *testing.T) {
	setCredentialEnv(t, "sender@example.com", "app-password", "dest@example.com")

	creds, err := LoadCredentials()
	require.NoError(t, err)
	require.Equal(t, Credentials{
		EmailAddress:   "sender@example.com",
		EmailPassword:  "app-password",
		RecipientEmail: "dest@example.com",
	}, creds)
}

func TestLoadCredentialsMissing(t *testing.T) {
	table := []struct {
		name      string
		address   string
		password  string
		recipient string
	}{
		{name: "no sender", password: "pw", recipient: "dest@example.com"},
		{name: "no password", address: "sender@example.com", recipient: "dest@example.com"},
		{name: "no recipient", address: "sender@example.com", password: "pw"},
		{name: "malformed sender", address: "not-an-address", password: "pw", recipient: "dest@example.com"},
	}

	for _, row := range table {
		t.Run(row.name, func(t *testing.T) {
			setCredentialEnv(t, row.address, row.password, row.recipient)
			_, err := LoadCredentials()
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrConfiguration))
		})
	}
}

func TestDefaultsAreValid(t *testing.T) {
	opts := Defaults()
	require.NoError(t, ValidateOptions(opts))
	require.Len(t, opts.Sectors, 11)
	require.Equal(t, "technology", opts.Sectors[0])
	require.Equal(t, "utilities", opts.Sectors[10])
}

func TestValidateOptionsRejects(t *testing.T) {
	opts := Defaults()
	opts.Sectors = nil
	require.ErrorIs(t, ValidateOptions(opts), ErrConfiguration)

	opts = Defaults()
	opts.BaseUrl = "not a url"
	require.ErrorIs(t, ValidateOptions(opts), ErrConfiguration)

	opts = Defaults()
	opts.Smtp.Port = 0
	require.ErrorIs(t, ValidateOptions(opts), ErrConfiguration)
}

func TestLoadOptionsMergesFile(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, OptionsFile), []byte(`{
		base_url: "http://127.0.0.1:8080",
		sectors: ["energy", "utilities"],
		smtp: { port: 2525 },
	}`), 0600)
	require.NoError(t, err)
	chdirForTest(t, dir)

	opts, err := LoadOptions()
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:8080", opts.BaseUrl)
	require.Equal(t, []string{"energy", "utilities"}, opts.Sectors)
	require.Equal(t, 2525, opts.Smtp.Port)
	require.Equal(t, "smtp.gmail.com", opts.Smtp.Host)
	require.Equal(t, "Crawling Data Result", opts.Smtp.Subject)
	require.Equal(t, Defaults().Timeout(), opts.Timeout())
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	chdirForTest(t, t.TempDir())
	require.NoError(t, LoadDotEnv())
}

func TestDefaultsRequireAuthenticatedSmtp(t *testing.T) {
	require.False(t, Defaults().Smtp.AllowUnauthenticated)
}

// chdirForTest changes the working directory for the duration of the test,
// like testing.T.Chdir (Go 1.24+).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
