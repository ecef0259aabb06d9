package dataset_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/census-cli/internal/dataset"
	"github.com/KaramelBytes/census-cli/internal/dataset/datasettest"
)

func TestLoadWorkbookSkipsTitleRows(t *testing.T) {
	path := datasettest.WriteCensusWorkbook(t)

	f, err := dataset.Load(path, dataset.DefaultLoadOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Unnamed: 0", "Unnamed: 1", "Unnamed: 2", "Unnamed: 3", "Urban",
		"Unnamed: 5", "Unnamed: 6", "Unnamed: 7", "Persons", "Males", "Females",
	}, f.Columns())
	assert.Equal(t, len(datasettest.CensusRows()), f.Len())
	for _, row := range f.Rows() {
		assert.Len(t, row, len(f.Columns()))
	}

	// The blank column between populated ones survives loading.
	blank, ok := f.Column("Unnamed: 7")
	require.True(t, ok)
	for _, c := range blank {
		assert.Empty(t, c)
	}
	persons, ok := f.Column("Persons")
	require.True(t, ok)
	assert.Equal(t, "100", persons[0])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := dataset.Load(filepath.Join(t.TempDir(), "absent.xlsx"), dataset.DefaultLoadOptions())
	var le *dataset.LoadError
	require.ErrorAs(t, err, &le)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadNoRowsAfterSkip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "short.csv")
	require.NoError(t, os.WriteFile(p, []byte("title\nsubtitle\n"), 0o644))

	_, err := dataset.Load(p, dataset.DefaultLoadOptions())
	var le *dataset.LoadError
	require.ErrorAs(t, err, &le)
	assert.ErrorIs(t, err, dataset.ErrNoRows)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	p := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(p, []byte("a\nb\nc\nd\n"), 0o644))

	_, err := dataset.Load(p, dataset.DefaultLoadOptions())
	var le *dataset.LoadError
	require.ErrorAs(t, err, &le)
}

func TestFromGridHeaderNames(t *testing.T) {
	f := dataset.FromGrid(
		[]string{"A", "", " B ", "A", "NaN"},
		[][]string{{"1", "2", "3", "4", "5", "6"}, {"NA"}},
	)
	require.NoError(t, f.Err())
	assert.Equal(t, []string{"A", "Unnamed: 1", "B", "A.1", "Unnamed: 4", "Unnamed: 5"}, f.Columns())
	assert.Equal(t, []string{"", "", "", "", "", ""}, f.Rows()[1])
	assert.True(t, f.Has("A.1"))
	assert.False(t, f.Has("C"))
}

func TestFromGridHeaderOnly(t *testing.T) {
	f := dataset.FromGrid([]string{"A", "B"}, nil)
	require.NoError(t, f.Err())
	assert.Equal(t, []string{"A", "B"}, f.Columns())
	assert.Zero(t, f.Len())
}
