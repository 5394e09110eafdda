package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, DefaultDirName, "config.toml"), store.Path())
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("github.token", "ghp_x"))
	require.NoError(t, store.Set("monitor.retries", 3))
	require.NoError(t, store.Set("monitor.case_sensitive", true))
	require.NoError(t, store.Set("monitor.formats", []string{"summary", "json"}))

	assert.Equal(t, "ghp_x", store.GetString("github.token"))
	assert.Equal(t, 3, store.GetInt("monitor.retries"))
	assert.True(t, store.GetBool("monitor.case_sensitive"))
	assert.Equal(t, []string{"summary", "json"}, store.GetStringSlice("monitor.formats"))

	// Wrong types and missing keys fall back to zero values.
	assert.Empty(t, store.GetString("monitor.retries"))
	assert.Zero(t, store.GetInt("github.token"))
	assert.False(t, store.GetBool("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))
	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_PersistsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("github.token", "ghp_x"))
	require.NoError(t, store.Set("gitea.username", "forge"))
	require.NoError(t, store.Set("gitea.password", "pw"))
	require.NoError(t, store.Set("throttle", 1.5))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[github]")
	assert.Contains(t, string(raw), "[gitea]")

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "ghp_x", reloaded.GetString("github.token"))
	assert.Equal(t, "forge", reloaded.GetString("gitea.username"))
	assert.Equal(t, []string{"gitea.password", "gitea.username", "github.token", "throttle"}, reloaded.Keys())

	v, ok := reloaded.Get("throttle")
	require.True(t, ok)
	assert.Equal(t, 1.5, v)
}

func TestConfigStore_ScalarAndTableCollide(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("github", "plain"))
	require.NoError(t, store.Set("github.token", "ghp_x"))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "plain", reloaded.GetString("github"))
	assert.Equal(t, "ghp_x", reloaded.GetString("github.token"))
}

func TestConfigStore_HandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[github]\ntoken = \"from-file\"\n\n[gitea]\nusername = \"u\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, "from-file", store.GetString("github.token"))
	assert.Equal(t, "u", store.GetString("gitea.username"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("github.token", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_Errors(t *testing.T) {
	t.Run("cannot create directory", func(t *testing.T) {
		store, err := NewConfigStore("/dev/null/cannot/create")
		assert.Error(t, err)
		assert.Nil(t, store)
	})

	t.Run("corrupted file", func(t *testing.T) {
		tmpDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not toml {{[["), 0600))

		store, err := NewConfigStore(tmpDir)
		assert.Error(t, err)
		assert.Nil(t, store)
	})
}

func TestConfigStore_SaveFailsOnDirectory(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("key", "value"))
	assert.Error(t, store.Save())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "k." + string(rune('a'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Keys(), 10)
}
