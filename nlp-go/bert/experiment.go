package bert

import (
	"log"

	"github.com/dustin/go-humanize"

	"github.com/colorsquare/ml-for-nlp/nlp-go/bow"
)

// ExperimentOptions configure a pooler comparison run on the review
// dataset.
type ExperimentOptions struct {
	ConfigPath string
	// Pooling overrides the config's pooling_layer_type when non-empty.
	Pooling    string
	Epochs     int
	NumSamples int
	DataDir    string
	// Out is the checkpoint path; empty disables saving.
	Out string
	// Chart is the accuracy chart PNG path; empty disables rendering.
	Chart string
}

// RunExperiment trains a classification head with the configured pooler on
// the review sentiment dataset and reports per-epoch accuracy.
func RunExperiment(opts ExperimentOptions) ([]EpochStats, error) {
	config := DefaultConfig()
	if opts.ConfigPath != "" {
		var err error
		if config, err = LoadConfig(opts.ConfigPath); err != nil {
			return nil, err
		}
	}
	if opts.Pooling != "" {
		config.PoolingLayerType = opts.Pooling
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	path, err := bow.DownloadDataset(opts.DataDir, opts.NumSamples)
	if err != nil {
		return nil, err
	}
	ds, err := bow.LoadDataset(path, opts.NumSamples, 0.8)
	if err != nil {
		return nil, err
	}

	vocab := BuildTokenVocab(ds.TrainReviews, config.VocabSize)
	config.VocabSize = vocab.Size()
	log.Printf("pooling %s, vocab size %s, train %s, val %s",
		config.PoolingLayerType,
		humanize.Comma(int64(vocab.Size())),
		humanize.Comma(int64(len(ds.TrainReviews))),
		humanize.Comma(int64(len(ds.ValReviews))))

	model, err := NewModel(config)
	if err != nil {
		return nil, err
	}
	model.Vocab = vocab

	trainOpts := DefaultTrainOptions()
	trainOpts.Seed = config.Seed
	if opts.Epochs > 0 {
		trainOpts.Epochs = opts.Epochs
	}
	history, err := Train(model,
		encodeSamples(vocab, ds.TrainReviews, ds.TrainLabels, config.MaxSeqLen),
		encodeSamples(vocab, ds.ValReviews, ds.ValLabels, config.MaxSeqLen),
		trainOpts)
	if err != nil {
		return nil, err
	}

	if opts.Out != "" {
		if err := model.Save(opts.Out); err != nil {
			return nil, err
		}
		log.Printf("checkpoint written to %s", opts.Out)
	}
	if opts.Chart != "" {
		if err := SaveAccuracyChart(opts.Chart, history); err != nil {
			return nil, err
		}
		log.Printf("accuracy chart written to %s", opts.Chart)
	}
	return history, nil
}

func encodeSamples(vocab *TokenVocab, reviews []string, labels []int, maxSeqLen int) []Sample {
	samples := make([]Sample, 0, len(reviews))
	for i, review := range reviews {
		samples = append(samples, Sample{
			IDs:   vocab.Encode(review, maxSeqLen),
			Label: labels[i],
		})
	}
	return samples
}
