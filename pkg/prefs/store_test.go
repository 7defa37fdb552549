package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleReversedTwiceRestoresValue(t *testing.T) {
	store := Open(NewMemoryBackend(), nil)
	require.False(t, store.IsReversed())

	assert.True(t, store.ToggleReversed())
	assert.True(t, store.IsReversed())
	assert.False(t, store.ToggleReversed())
	assert.False(t, store.IsReversed())
}

func TestAddThenRemoveIgnored(t *testing.T) {
	cases := []string{"com.apple.Safari", "", "never-added", "org.mozilla.firefox"}
	for _, id := range cases {
		t.Run(fmt.Sprintf("id=%q", id), func(t *testing.T) {
			store := Open(NewMemoryBackend(), nil)

			store.RemoveIgnored(id)
			assert.False(t, store.IsIgnored(id))

			store.AddIgnored(id)
			assert.True(t, store.IsIgnored(id))

			store.RemoveIgnored(id)
			assert.False(t, store.IsIgnored(id))
		})
	}
}

func TestAddIgnoredKeepsDuplicatesAndRemoveDropsAll(t *testing.T) {
	backend := NewMemoryBackend()
	store := Open(backend, nil)

	store.AddIgnored("a")
	store.AddIgnored("b")
	store.AddIgnored("a")
	assert.Equal(t, []string{"a", "b", "a"}, store.Ignored())

	persisted, ok, err := backend.Strings(KeyIgnoredApplications)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "a"}, persisted)

	store.RemoveIgnored("a")
	assert.Equal(t, []string{"b"}, store.Ignored())
	assert.False(t, store.IsIgnored("a"))
}

func TestOpenLoadsPersistedValues(t *testing.T) {
	backend := NewMemoryBackend()
	require.NoError(t, backend.SetStrings(KeyIgnoredApplications, []string{"x", "y"}))
	require.NoError(t, backend.SetBool(KeyReverseButtons, true))

	store := Open(backend, nil)
	assert.Equal(t, []string{"x", "y"}, store.Ignored())
	assert.True(t, store.IsReversed())
}

func TestReversalPersistedUnderItsOwnKey(t *testing.T) {
	backend := NewMemoryBackend()
	store := Open(backend, nil)
	store.AddIgnored("x")
	store.ToggleReversed()

	reverse, ok, err := backend.Bool(KeyReverseButtons)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, reverse)

	ignored, ok, err := backend.Strings(KeyIgnoredApplications)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, ignored)
}

type failingBackend struct {
	*MemoryBackend
}

func (failingBackend) SetStrings(string, []string) error { return errors.New("disk full") }
func (failingBackend) SetBool(string, bool) error        { return errors.New("disk full") }

func TestPersistFailureKeepsInMemoryState(t *testing.T) {
	store := Open(failingBackend{NewMemoryBackend()}, nil)

	store.AddIgnored("x")
	assert.True(t, store.IsIgnored("x"))
	assert.True(t, store.ToggleReversed())
	assert.True(t, store.IsReversed())
}

func TestIgnoredReturnsCopy(t *testing.T) {
	store := Open(NewMemoryBackend(), nil)
	store.AddIgnored("x")

	list := store.Ignored()
	list[0] = "mutated"
	assert.True(t, store.IsIgnored("x"))
	assert.False(t, store.IsIgnored("mutated"))
}

func TestConcurrentReadersNeverSeeTornList(t *testing.T) {
	store := Open(NewMemoryBackend(), nil)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			store.AddIgnored("app")
			store.ToggleReversed()
			store.RemoveIgnored("app")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			for _, id := range store.Ignored() {
				if id != "app" {
					t.Errorf("unexpected entry %q", id)
					return
				}
			}
			_ = store.IsReversed()
			_ = store.IsIgnored("app")
		}
	}()
	wg.Wait()

	assert.Empty(t, store.Ignored())
}

func TestReloadPicksUpExternalEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.toml")

	backend, err := OpenFileBackend(path)
	require.NoError(t, err)
	store := Open(backend, nil)
	store.AddIgnored("com.app.A")

	content := "ignored-applications = [\"com.app.B\"]\nreverse-buttons = true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	store.Reload()

	assert.Equal(t, []string{"com.app.B"}, store.Ignored())
	assert.True(t, store.IsReversed())

	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))
	store.Reload()
	assert.Empty(t, store.Ignored())
	assert.False(t, store.IsReversed())
}

func TestReloadKeepsValuesWhenFileIsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.toml")

	backend, err := OpenFileBackend(path)
	require.NoError(t, err)
	store := Open(backend, nil)
	store.AddIgnored("com.app.A")

	require.NoError(t, os.WriteFile(path, []byte("ignored-applications = [\n"), 0o644))
	store.Reload()

	assert.Equal(t, []string{"com.app.A"}, store.Ignored())
}
