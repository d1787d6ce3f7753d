package plugin

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func writeManifest(t *testing.T, root string, m Manifest) string {
	t.Helper()

	pluginDir := filepath.Join(root, m.Name)
	require.NoError(t, os.MkdirAll(pluginDir, 0755))

	manifestBytes, err := json.Marshal(m)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(pluginDir, ManifestFile), manifestBytes, 0644))
	return pluginDir
}

func TestManager_Discover(t *testing.T) {
	tmpDir := t.TempDir()
	pluginDir := writeManifest(t, tmpDir, Manifest{
		Name:        "system-control",
		Version:     "1.0.0",
		Description: "Media keys",
		Executable:  "system-control",
		Actions:     []string{"media-next", "media-prev"},
	})

	manager := NewManager(tmpDir, zaptest.NewLogger(t))
	require.NoError(t, manager.Discover())

	plugins := manager.List()
	require.Len(t, plugins, 1)

	plugin := plugins[0]
	assert.Equal(t, "system-control", plugin.Manifest.Name)
	assert.Equal(t, pluginDir, plugin.Path)
	assert.Equal(t, filepath.Join(pluginDir, "system-control"), plugin.Executable)
	assert.True(t, plugin.Supports("media-prev"))
	assert.False(t, plugin.Supports("brightness-up"))
}

func TestManager_Discover_MultiplePlugins(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"system-control", "keyboard"} {
		writeManifest(t, tmpDir, Manifest{Name: name, Executable: name})
	}

	manager := NewManager(tmpDir, nil)
	require.NoError(t, manager.Discover())

	plugins := manager.List()
	require.Len(t, plugins, 2)
	assert.Equal(t, "keyboard", plugins[0].Manifest.Name, "plugins are sorted by name")
}

func TestManager_Discover_Skips(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
	}{
		{"empty dir", func(t *testing.T, dir string) {}},
		{"dir without manifest", func(t *testing.T, dir string) {
			require.NoError(t, os.MkdirAll(filepath.Join(dir, "stray"), 0755))
		}},
		{"invalid json", func(t *testing.T, dir string) {
			bad := filepath.Join(dir, "bad-plugin")
			require.NoError(t, os.MkdirAll(bad, 0755))
			require.NoError(t, os.WriteFile(filepath.Join(bad, ManifestFile), []byte("not valid json"), 0644))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setup(t, dir)

			manager := NewManager(dir, zaptest.NewLogger(t))
			require.NoError(t, manager.Discover())
			assert.Empty(t, manager.List())
		})
	}

	t.Run("non-existent dir", func(t *testing.T) {
		manager := NewManager("/path/that/does/not/exist", nil)
		assert.NoError(t, manager.Discover())
	})
}

func TestManager_Get(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, Manifest{Name: "keyboard", Version: "2.0.0", Executable: "keyboard"})

	manager := NewManager(tmpDir, nil)
	require.NoError(t, manager.Discover())

	plugin, err := manager.Get("keyboard")
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", plugin.Manifest.Version)

	_, err = manager.Get("nonexistent-plugin")
	assert.ErrorIs(t, err, ErrPluginNotFound)
}

func TestManager_PluginDir(t *testing.T) {
	pluginDir := "/path/to/plugins"
	assert.Equal(t, pluginDir, NewManager(pluginDir, nil).PluginDir())
}
