package bow

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestCSV(t *testing.T, rows int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "review_5k.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	fmt.Fprintln(f, "review,sentiment")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(f, "review number %d,%d\n", i, i%2)
	}
	return path
}

func TestLoadDatasetSplit(t *testing.T) {
	path := writeTestCSV(t, 100)

	ds, err := LoadDataset(path, 50, 0.8)
	require.NoError(t, err)

	assert.Len(t, ds.TrainReviews, 40)
	assert.Len(t, ds.TrainLabels, 40)
	assert.Len(t, ds.ValReviews, 10)
	assert.Len(t, ds.ValLabels, 10)
}

func TestLoadDatasetDeterministicShuffle(t *testing.T) {
	path := writeTestCSV(t, 100)

	first, err := LoadDataset(path, 0, 0.8)
	require.NoError(t, err)
	second, err := LoadDataset(path, 0, 0.8)
	require.NoError(t, err)

	assert.Equal(t, first.TrainReviews, second.TrainReviews)
	assert.Equal(t, first.ValLabels, second.ValLabels)
}

func TestLoadDatasetMissingFile(t *testing.T) {
	_, err := LoadDataset(filepath.Join(t.TempDir(), "nope.csv"), 10, 0.8)
	assert.Error(t, err)
}

func TestDatasetPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "review_5k.csv"), DatasetPath("data", 5000))
}
