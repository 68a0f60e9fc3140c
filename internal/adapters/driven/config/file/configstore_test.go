package file

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*ConfigStore, string) {
	t.Helper()
	t.Setenv("COMPASS_BACKEND_URL", "")
	t.Setenv("COMPASS_ADMIN_TOKEN", "")
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	return store, tmpDir
}

func TestNewConfigStore_Success(t *testing.T) {
	store, tmpDir := newTestStore(t)

	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".compass", "config.toml"), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "a", "b")

	_, err := NewConfigStore(nested)

	require.NoError(t, err)
	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("[backend\nurl="), 0600))

	_, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Set("ask.language", "Spanish"))

	val, ok := store.Get("ask.language")
	assert.True(t, ok)
	assert.Equal(t, "Spanish", val)

	_, ok = store.Get("ask.missing")
	assert.False(t, ok)
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Set("backend.url", "http://localhost:9000"))
	require.NoError(t, store.Set("backend.rate_per_second", 4.5))
	require.NoError(t, store.Set("ask.top_k", 12))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "[backend]")
	assert.Contains(t, content, "[ask]")
	assert.NotContains(t, content, "backend.url")
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	t.Setenv("COMPASS_BACKEND_URL", "")
	t.Setenv("COMPASS_ADMIN_TOKEN", "")
	tmpDir := t.TempDir()
	content := `
[backend]
url = "https://resources.example.org"
timeout = "45s"
rate_per_second = 3

[ask]
top_k = 10
free_only = true
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "https://resources.example.org", store.GetString("backend.url"))
	assert.Equal(t, "45s", store.GetString("backend.timeout"))
	assert.InDelta(t, 3.0, store.GetFloat("backend.rate_per_second"), 0.0001)
	assert.Equal(t, 10, store.GetInt("ask.top_k"))
	assert.True(t, store.GetBool("ask.free_only"))
}

func TestConfigStore_TypedGetters_WrongType(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Set("ask.language", "English"))

	assert.Equal(t, 0, store.GetInt("ask.language"))
	assert.Zero(t, store.GetFloat("ask.language"))
	assert.False(t, store.GetBool("ask.language"))
	assert.Nil(t, store.GetStringSlice("ask.language"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Set("ask.languages", []string{"English", "Spanish"}))

	reloaded, err := NewConfigStore(filepath.Dir(store.Path()))
	require.NoError(t, err)

	assert.Equal(t, []string{"English", "Spanish"}, reloaded.GetStringSlice("ask.languages"))
}

func TestConfigStore_Persistence(t *testing.T) {
	store, tmpDir := newTestStore(t)

	require.NoError(t, store.Set("backend.url", "http://10.0.0.1:8000"))
	require.NoError(t, store.Set("history.limit", 25))
	require.NoError(t, store.Set("history.enabled", false))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.1:8000", reloaded.GetString("backend.url"))
	assert.Equal(t, 25, reloaded.GetInt("history.limit"))
	val, ok := reloaded.Get("history.enabled")
	assert.True(t, ok)
	assert.Equal(t, false, val)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Set("admin.token", "secret"))

	info, err := os.Stat(store.Path())

	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("COMPASS_BACKEND_URL", "http://override:8000")
	t.Setenv("COMPASS_ADMIN_TOKEN", " env-token ")

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("backend.url", "http://file:8000"))

	assert.Equal(t, "http://override:8000", store.GetString("backend.url"))
	assert.Equal(t, "env-token", store.GetString("admin.token"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "http://file:8000")
	assert.NotContains(t, string(data), "env-token")
}

func TestConfigStore_Load_EmptyFile(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte(""), 0600))

	require.NoError(t, store.Load())

	_, ok := store.Get("backend.url")
	assert.False(t, ok)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, _ := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("history.limit", n)
			_ = store.GetInt("history.limit")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("history.limit")
	assert.True(t, ok)
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"backend.url": "x",
		"ask.top_k":   3,
		"plain":       true,
	})

	assert.Equal(t, map[string]any{
		"backend": map[string]any{"url": "x"},
		"ask":     map[string]any{"top_k": 3},
		"plain":   true,
	}, nested)
}

func TestFlattenMap(t *testing.T) {
	flat := flattenMap(map[string]any{
		"backend": map[string]any{"url": "x", "retry": map[string]any{"max": int64(2)}},
	}, "")

	assert.Equal(t, map[string]any{"backend.url": "x", "backend.retry.max": int64(2)}, flat)
}

func TestConfigStore_Watch(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Set("ask.top_k", 5))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- store.Watch(ctx, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(store.Path(), []byte("[ask]\ntop_k = 9\n"), 0600))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the change")
	}
	assert.Equal(t, 9, store.GetInt("ask.top_k"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
