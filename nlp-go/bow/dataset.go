package bow

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/colorsquare/ml-for-nlp/nlp-golib/errors"
)

const datasetURLFormat = "https://raw.githubusercontent.com/dongkwan-kim/small_dataset/master/review_%dk.csv"

// shuffleSeed fixes the train/validation partition across runs.
const shuffleSeed = 42

// ReviewRecord is one row of the review dataset.
type ReviewRecord struct {
	Review    string `csv:"review"`
	Sentiment int    `csv:"sentiment"`
}

// Dataset holds the shuffled train/validation split of the review corpus.
type Dataset struct {
	TrainReviews []string
	TrainLabels  []int
	ValReviews   []string
	ValLabels    []int
}

// DatasetPath returns the local path for a dataset of the given sample size.
func DatasetPath(dir string, size int) string {
	return filepath.Join(dir, fmt.Sprintf("review_%dk.csv", size/1000))
}

// DownloadDataset fetches the review CSV into dir unless it already exists,
// and returns its local path.
func DownloadDataset(dir string, size int) (string, error) {
	path := DatasetPath(dir, size)
	if _, err := os.Stat(path); err == nil {
		log.Printf("already exist: %s", path)
		return path, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "creating dataset dir %s", dir)
	}

	url := fmt.Sprintf(datasetURLFormat, size/1000)
	log.Printf("download: %s", url)

	resp, err := http.Get(url)
	if err != nil {
		return "", errors.Wrapf(err, "fetching %s", url)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("fetching %s: status %s", url, resp.Status)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", errors.Wrapf(err, "writing %s", path)
	}
	return path, nil
}

// LoadDataset reads the review CSV, shuffles it deterministically, keeps
// numSamples records and splits them into train/validation with the given
// train ratio.
func LoadDataset(path string, numSamples int, trainRatio float64) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening dataset %s", path)
	}
	defer f.Close()

	var records []*ReviewRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, errors.Wrapf(err, "parsing dataset %s", path)
	}

	rng := rand.New(rand.NewSource(shuffleSeed))
	rng.Shuffle(len(records), func(i, j int) {
		records[i], records[j] = records[j], records[i]
	})
	if numSamples > 0 && numSamples < len(records) {
		records = records[:numSamples]
	}

	numTrain := int(float64(len(records)) * trainRatio)
	ds := &Dataset{}
	for i, rec := range records {
		if i < numTrain {
			ds.TrainReviews = append(ds.TrainReviews, rec.Review)
			ds.TrainLabels = append(ds.TrainLabels, rec.Sentiment)
		} else {
			ds.ValReviews = append(ds.ValReviews, rec.Review)
			ds.ValLabels = append(ds.ValLabels, rec.Sentiment)
		}
	}
	return ds, nil
}
