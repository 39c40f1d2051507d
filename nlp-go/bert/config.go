// Package bert implements a small transformer encoder with swappable
// pooling layers feeding a sequence classification head.
package bert

import (
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/colorsquare/ml-for-nlp/nlp-golib/errors"
)

// Pooling layer types.
const (
	PoolingCLS         = "CLS"
	PoolingMeanMax     = "MEAN_MAX"
	PoolingTopKMean    = "TOPK_MEAN"
	PoolingTopHalfMean = "TOPHALF_MEAN"
	PoolingMeanCLS     = "MEAN_CLS"
	PoolingTopKMeanCLS = "TOPK_MEAN_CLS"
)

// Config holds the encoder and head hyperparameters.
type Config struct {
	VocabSize        int     `yaml:"vocab_size"`
	HiddenSize       int     `yaml:"hidden_size"`
	NumLayers        int     `yaml:"num_layers"`
	NumHeads         int     `yaml:"num_heads"`
	IntermediateSize int     `yaml:"intermediate_size"`
	MaxSeqLen        int     `yaml:"max_seq_len"`
	NumLabels        int     `yaml:"num_labels"`
	Dropout          float64 `yaml:"dropout"`
	PoolingLayerType string  `yaml:"pooling_layer_type"`
	// TopK is the k used by the TOPK_MEAN and TOPK_MEAN_CLS poolers.
	TopK int `yaml:"top_k"`
	Seed int64 `yaml:"seed"`
}

// DefaultConfig returns a configuration small enough to train on a laptop.
func DefaultConfig() Config {
	return Config{
		VocabSize:        8000,
		HiddenSize:       64,
		NumLayers:        2,
		NumHeads:         4,
		IntermediateSize: 256,
		MaxSeqLen:        128,
		NumLabels:        2,
		Dropout:          0.1,
		PoolingLayerType: PoolingCLS,
		TopK:             20,
		Seed:             42,
	}
}

// Validate checks invariants the layer shapes depend on.
func (c Config) Validate() error {
	if c.HiddenSize <= 0 || c.NumLayers <= 0 || c.MaxSeqLen <= 0 {
		return errors.Errorf("hidden_size, num_layers and max_seq_len must be positive")
	}
	if c.NumHeads <= 0 || c.HiddenSize%c.NumHeads != 0 {
		return errors.Errorf("hidden_size %d must be divisible by num_heads %d", c.HiddenSize, c.NumHeads)
	}
	switch c.PoolingLayerType {
	case PoolingCLS, PoolingMeanMax, PoolingTopKMean, PoolingTopHalfMean, PoolingMeanCLS, PoolingTopKMeanCLS:
	default:
		return errors.Errorf("wrong pooling_layer_type: %s", c.PoolingLayerType)
	}
	return nil
}

// LoadConfig reads a yaml config file, filling unset fields with defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	buf, err := os.ReadFile(path)
	if err != nil {
		return config, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(buf, &config); err != nil {
		return config, errors.Wrapf(err, "parsing config %s", path)
	}
	return config, config.Validate()
}
