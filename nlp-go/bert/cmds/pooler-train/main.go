package main

import (
	"log"

	"github.com/alexflint/go-arg"

	"github.com/colorsquare/ml-for-nlp/nlp-go/bert"
)

func main() {
	args := struct {
		Config     string `arg:"--config" help:"yaml config, defaults apply when omitted"`
		Pooling    string `arg:"--pooling" help:"override pooling_layer_type"`
		Epochs     int    `arg:"--epochs" help:"training epochs"`
		NumSamples int    `arg:"--num-samples" help:"number of reviews to use"`
		DataDir    string `arg:"--data-dir" help:"directory for the downloaded review dataset"`
		Out        string `arg:"--out" help:"checkpoint output path"`
		Chart      string `arg:"--chart" help:"accuracy chart PNG path"`
	}{
		Epochs:     3,
		NumSamples: 5000,
		DataDir:    "data",
		Out:        "pooler.gob",
	}
	arg.MustParse(&args)

	history, err := bert.RunExperiment(bert.ExperimentOptions{
		ConfigPath: args.Config,
		Pooling:    args.Pooling,
		Epochs:     args.Epochs,
		NumSamples: args.NumSamples,
		DataDir:    args.DataDir,
		Out:        args.Out,
		Chart:      args.Chart,
	})
	if err != nil {
		log.Fatalln(err)
	}
	final := history[len(history)-1]
	log.Printf("final validation accuracy %.4f", final.ValAcc)
}
