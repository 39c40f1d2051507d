package main

import (
	"log"

	"github.com/colorsquare/ml-for-nlp/nlp-go/bow"
	"github.com/colorsquare/ml-for-nlp/nlp-golib/cmdline"
	"github.com/colorsquare/ml-for-nlp/nlp-golib/errors"
)

var classifyCmd = cmdline.Command{
	Name:     "classify",
	Synopsis: "train a bag-of-words sentiment classifier on the review dataset",
	Args: &classifyArgs{
		DataDir:    "data",
		NumSamples: 5000,
		NGram:      1,
		Classifier: bow.ClassifierLogistic,
	},
}

type classifyArgs struct {
	DataDir    string `arg:"--data-dir"`
	NumSamples int    `arg:"--num-samples"`
	NGram      int    `arg:"--ngram"`
	Classifier string `arg:"--classifier"`
	Stem       bool   `arg:"--stem"`
	Verbose    bool   `arg:"--verbose"`
}

func (args *classifyArgs) Validate() error {
	if args.NGram < 1 {
		return errors.Errorf("ngram must be at least 1, got %d", args.NGram)
	}
	return nil
}

func (args *classifyArgs) Handle() error {
	result, err := bow.Run(bow.Options{
		DataDir:    args.DataDir,
		NumSamples: args.NumSamples,
		NGram:      args.NGram,
		Classifier: args.Classifier,
		Stem:       args.Stem,
		Verbose:    args.Verbose,
	})
	if err != nil {
		return err
	}
	log.Printf("vocab size %d, validation accuracy %.4f", result.VocabSize, result.ValAccuracy)
	return nil
}
