package main

import (
	"log"

	"github.com/alexflint/go-arg"

	"github.com/colorsquare/ml-for-nlp/nlp-go/bow"
)

func main() {
	args := struct {
		DataDir    string `arg:"--data-dir" help:"directory for the downloaded review dataset"`
		NumSamples int    `arg:"--num-samples" help:"number of reviews to use"`
		NGram      int    `arg:"--ngram" help:"n-gram size for bag-of-words features"`
		Classifier string `arg:"--classifier" help:"logistic, perceptron, naive-bayes, forest or hashed-nb"`
		Stem       bool   `arg:"--stem" help:"apply Porter stemming before building features"`
		Verbose    bool   `arg:"--verbose" help:"print dataset statistics and example errors"`
	}{
		DataDir:    "data",
		NumSamples: 5000,
		NGram:      1,
		Classifier: bow.ClassifierLogistic,
	}
	arg.MustParse(&args)

	result, err := bow.Run(bow.Options{
		DataDir:    args.DataDir,
		NumSamples: args.NumSamples,
		NGram:      args.NGram,
		Classifier: args.Classifier,
		Stem:       args.Stem,
		Verbose:    args.Verbose,
	})
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("vocab size %d, validation accuracy %.4f", result.VocabSize, result.ValAccuracy)
}
