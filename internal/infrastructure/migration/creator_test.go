package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct{ in, want string }{
		{"add shop rating", "add_shop_rating"},
		{"Add-Shop-Rating", "add_shop_rating"},
		{"add__order__notes", "add_order_notes"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading and trailing_", "leading_and_trailing"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, slugify(tt.in))
		})
	}
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()

	first, err := Create(dir, "add shop rating")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_add_shop_rating.up.sql"), first.UpPath)

	content, err := os.ReadFile(first.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "add_shop_rating (down)")

	second, err := Create(dir, "order notes")
	require.NoError(t, err)
	assert.Equal(t, 2, second.Version)

	_, err = Create(dir, "!!!")
	assert.Error(t, err)
}

func TestLatestVersion(t *testing.T) {
	latest, err := LatestVersion(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Zero(t, latest)

	latest, err = LatestVersion(filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, latest, 1)
}
