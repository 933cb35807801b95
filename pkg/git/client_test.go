package git

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *Client {
	t.Helper()
	if !IsInstalled() {
		t.Skip("git not installed")
	}

	client := NewClient(t.TempDir(), nil)
	require.NoError(t, client.Init())
	_, err := client.Run("config", "user.email", "editor@example.com")
	require.NoError(t, err)
	_, err = client.Run("config", "user.name", "Editor")
	require.NoError(t, err)
	return client
}

func TestClient_Init(t *testing.T) {
	client := newRepo(t)

	_, err := os.Stat(filepath.Join(client.WorkDir, ".git"))
	assert.NoError(t, err)
	assert.True(t, client.IsRepo())
}

func TestClient_IsRepo_PlainDir(t *testing.T) {
	if !IsInstalled() {
		t.Skip("git not installed")
	}
	assert.False(t, NewClient(t.TempDir(), nil).IsRepo())
}

func TestClient_CommitOnlyNamedFile(t *testing.T) {
	client := newRepo(t)

	require.NoError(t, os.WriteFile(filepath.Join(client.WorkDir, "posts.json"), []byte("[]"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(client.WorkDir, "other.txt"), []byte("x"), 0644))

	status, err := client.Status("posts.json")
	require.NoError(t, err)
	assert.Contains(t, status, "posts.json")
	assert.NotContains(t, status, "other.txt")

	require.NoError(t, client.Add("posts.json"))
	require.NoError(t, client.Commit(FormatCommitMessage(CommitTypeDocs, "blog", "update B001", ""), "posts.json"))

	status, err = client.Status("posts.json")
	require.NoError(t, err)
	assert.Empty(t, status)

	log, err := client.Run("log", "-1", "--format=%B")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(log, "docs(blog): update B001"))
	assert.Contains(t, log, Footer)

	// untracked file is untouched
	status, err = client.Status()
	require.NoError(t, err)
	assert.Contains(t, status, "other.txt")
}
