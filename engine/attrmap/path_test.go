package attrmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_Path(t *testing.T) {
	t.Parallel()
	m := New(map[string]any{
		"default_image": map[string]any{"url": nil, "width": 1200},
		"default_type":  "website",
	})

	t.Run("Should resolve nested keys", func(t *testing.T) {
		t.Parallel()
		v, ok := m.Path("default_image.width")
		assert.True(t, ok)
		assert.Equal(t, 1200, v)
	})

	t.Run("Should distinguish nil from missing", func(t *testing.T) {
		t.Parallel()
		v, ok := m.Path("default_image.url")
		assert.True(t, ok)
		assert.Nil(t, v)
		_, ok = m.Path("default_image.alt")
		assert.False(t, ok)
	})

	t.Run("Should stop at scalars", func(t *testing.T) {
		t.Parallel()
		_, ok := m.Path("default_type.name")
		assert.False(t, ok)
	})
}

func TestMap_SetPath(t *testing.T) {
	t.Parallel()
	t.Run("Should create intermediate maps", func(t *testing.T) {
		t.Parallel()
		m := New(nil)
		require.NoError(t, m.SetPath("user_agents.*.allow", []string{"/"}))
		assert.Equal(t, map[string]any{
			"user_agents": map[string]any{"*": map[string]any{"allow": []string{"/"}}},
		}, m.ToMap())
	})

	t.Run("Should keep sibling values", func(t *testing.T) {
		t.Parallel()
		m := New(map[string]any{"webp": map[string]any{"enabled": true, "quality": 80}})
		require.NoError(t, m.SetPath("webp.quality", 90))
		assert.Equal(t, map[string]any{"enabled": true, "quality": 90}, m.Section("webp").ToMap())
	})

	t.Run("Should replace nil intermediates", func(t *testing.T) {
		t.Parallel()
		m := New(map[string]any{"organization": nil})
		require.NoError(t, m.SetPath("organization.name", "Acme"))
		assert.Equal(t, "Acme", m.Section("organization").Get("name"))
	})

	t.Run("Should reject scalars in the way", func(t *testing.T) {
		t.Parallel()
		m := New(map[string]any{"host": "https://x"})
		err := m.SetPath("host.name", "y")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotAMap)
		assert.Equal(t, "https://x", m.Get("host"))
	})
}

func TestNilMap_Path(t *testing.T) {
	t.Parallel()
	t.Run("Should resolve nothing and refuse to store", func(t *testing.T) {
		t.Parallel()
		var m *Map
		_, ok := m.Path("default_image.url")
		assert.False(t, ok)
		err := m.SetPath("default_image.url", "og.jpg")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotAMap)
	})
}
