package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/ginjaninja78/eaglebom/pkg/errors"
)

func TestFindFile(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(second, "Mouser Stock.txt"), []byte("x"), 0o644))

	t.Run("explicit wins", func(t *testing.T) {
		path, err := FindFile("/elsewhere/stock.txt", "Mouser Stock.txt", []string{second})
		require.NoError(t, err)
		assert.Equal(t, "/elsewhere/stock.txt", path)
	})

	t.Run("first existing in search order", func(t *testing.T) {
		path, err := FindFile("", "Mouser Stock.txt", []string{"", first, second})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(second, "Mouser Stock.txt"), path)
	})

	t.Run("directories do not match", func(t *testing.T) {
		require.NoError(t, os.Mkdir(filepath.Join(first, "Mouser Stock.txt"), 0o755))
		path, err := FindFile("", "Mouser Stock.txt", []string{first, second})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(second, "Mouser Stock.txt"), path)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := FindFile("", "Mouser Stock.txt", []string{t.TempDir()})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsNotFound(err))
		assert.Contains(t, err.Error(), "Mouser Stock.txt")
	})
}

func TestGenerateOutputFileName(t *testing.T) {
	now := time.Date(2024, 1, 15, 14, 30, 22, 0, time.UTC)
	id := uuid.MustParse("a1b2c3d4-e5f6-7890-abcd-ef1234567890")

	tests := []struct {
		name   string
		format string
		params map[string]string
		want   string
	}{
		{"all placeholders", "bom_{schematic}_{timestamp}_{uuid}.xlsx", map[string]string{"schematic": "amp"},
			"bom_amp_20240115_143022_a1b2c3d4-e5f6-7890-abcd-ef1234567890.xlsx"},
		{"adds extension", "bom_{date}", nil, "bom_20240115.xlsx"},
		{"extension case", "BOM_{time}.XLSX", nil, "BOM_143022.XLSX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, generateOutputFileName(tt.format, tt.params, ".xlsx", now, id))
		})
	}

	assert.NotEqual(t,
		GenerateOutputFileName("{uuid}", nil, ""),
		GenerateOutputFileName("{uuid}", nil, ""))
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "amp", BaseName("/boards/amp.sch"))
	assert.Equal(t, "amp.v2", BaseName("amp.v2.sch"))
}

func TestEnsureDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "bom.xlsx")
	require.NoError(t, EnsureDir(path))
	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
