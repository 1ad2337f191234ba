package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/eliseohh/demobot/internal/config"
	"github.com/eliseohh/demobot/internal/event"
	"github.com/eliseohh/demobot/internal/journal"
	"github.com/eliseohh/demobot/internal/keychain"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "demobot dev\n", out)
}

func TestSubcommands(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"run", "token", "journal", "outbox", "version"} {
		assert.Contains(t, names, want)
	}
	assert.Equal(t, config.DefaultPath, root.PersistentFlags().Lookup("config").DefValue)
}

func TestJournalCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := journal.Open(path, newQuietLogger())
	require.NoError(t, err)
	require.NoError(t, j.Record(context.Background(), event.New(1, 4242, "callback:btn1", "edit_message_text", nil)))
	require.NoError(t, j.Close())

	out, err := execute(t, "", "journal", "--db", path, "-n", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "TRIGGER")
	assert.Contains(t, out, "callback:btn1")
	assert.Contains(t, out, "4242")
	assert.Contains(t, out, "Showing 1 of 1 updates.")

	out, err = execute(t, "", "journal", "--db", path, "--clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Journal cleared (1 entries removed).")

	out, err = execute(t, "", "journal", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No updates recorded.")
}

func TestJournalEmpty(t *testing.T) {
	out, err := execute(t, "", "journal", "--db", filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	assert.Contains(t, out, "No updates recorded.")
}

func TestJournalDisabled(t *testing.T) {
	t.Setenv("BOT_JOURNAL", "")
	_, err := execute(t, "", "journal", "--config", filepath.Join(t.TempDir(), "none.toml"))
	assert.ErrorContains(t, err, "not found")

	_, err = execute(t, "", "journal")
	assert.ErrorContains(t, err, "journal is disabled")
}

func TestTokenSetAndDelete(t *testing.T) {
	keyring.MockInit()

	_, err := execute(t, "", "token", "set", "nope")
	assert.ErrorContains(t, err, "does not look like a bot token")

	out, err := execute(t, "", "token", "set", "123456:ABCdefGhIJKlmn")
	require.NoError(t, err)
	assert.Contains(t, out, "Token stored")

	got, err := keychain.Get(keychain.TokenAccount)
	require.NoError(t, err)
	assert.Equal(t, "123456:ABCdefGhIJKlmn", got)

	_, err = execute(t, "987:from-stdin-secret\n", "token", "set")
	require.NoError(t, err)
	got, _ = keychain.Get(keychain.TokenAccount)
	assert.Equal(t, "987:from-stdin-secret", got)

	_, err = execute(t, "", "token", "delete")
	require.NoError(t, err)
	_, err = keychain.Get(keychain.TokenAccount)
	assert.ErrorIs(t, err, keychain.ErrNotFound)
}

func TestLooksLikeToken(t *testing.T) {
	assert.True(t, looksLikeToken("8430334122:AAGmy7cxzIQddp2TlAYYkO"))
	assert.False(t, looksLikeToken("abc:AAGmy7cxzIQddp2TlAYYkO"))
	assert.False(t, looksLikeToken("123:short"))
	assert.False(t, looksLikeToken("no-colon"))
}
