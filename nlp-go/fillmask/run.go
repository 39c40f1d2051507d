package fillmask

import (
	"log"
	"strings"

	"github.com/colorsquare/ml-for-nlp/nlp-go/bert"
	"github.com/colorsquare/ml-for-nlp/nlp-golib/errors"
)

// RunOptions configure a bias measurement run.
type RunOptions struct {
	// ModelPath points at a trained checkpoint. When empty a randomly
	// initialized encoder is used, which gives an untrained baseline.
	ModelPath      string
	AttributesPath string
	TemplatesPath  string
	TopK           int
	CacheSize      int
}

// Run loads the resources and the model, measures ethnic bias and prints
// the report.
func Run(opts RunOptions) error {
	templates, err := LoadLines(opts.TemplatesPath)
	if err != nil {
		return err
	}
	attributes, err := LoadLines(opts.AttributesPath)
	if err != nil {
		return err
	}

	encoder, vocab, err := loadEncoder(opts.ModelPath, templates, attributes, DefaultTargets)
	if err != nil {
		return err
	}

	cacheSize := opts.CacheSize
	if cacheSize <= 0 {
		cacheSize = 256
	}
	model, err := NewCached(NewMaskedLM(encoder, vocab), cacheSize)
	if err != nil {
		return err
	}

	log.Printf("%d templates, %d attributes, %d targets",
		len(templates), len(attributes), len(DefaultTargets))
	result, err := MeasureBias(model, templates, attributes, DefaultTargets)
	if err != nil {
		return err
	}
	PrintReport(result, opts.TopK)
	return nil
}

func loadEncoder(modelPath string, templates, attributes, targets []string) (*bert.Encoder, *bert.TokenVocab, error) {
	if modelPath != "" {
		model, err := bert.LoadModel(modelPath)
		if err != nil {
			return nil, nil, err
		}
		if model.Vocab == nil {
			return nil, nil, errors.Errorf("checkpoint %s carries no vocabulary", modelPath)
		}
		return model.Encoder, model.Vocab, nil
	}

	// No checkpoint: build a vocabulary from every sentence this run can
	// query, so all targets and attributes get distinct embeddings.
	var corpus []string
	for _, template := range templates {
		corpus = append(corpus, ReplaceTemplate(template, bert.MaskToken))
		for _, attribute := range attributes {
			corpus = append(corpus, ReplaceTemplate(template, attribute))
		}
	}
	corpus = append(corpus, strings.Join(targets, " "))

	config := bert.DefaultConfig()
	vocab := bert.BuildTokenVocab(corpus, config.VocabSize)
	config.VocabSize = vocab.Size()
	if err := config.Validate(); err != nil {
		return nil, nil, err
	}
	return bert.NewEncoder(config), vocab, nil
}
