package main

import (
	"log"

	"github.com/colorsquare/ml-for-nlp/nlp-go/bert"
	"github.com/colorsquare/ml-for-nlp/nlp-golib/cmdline"
)

var trainCmd = cmdline.Command{
	Name:     "train",
	Synopsis: "train a pooling classification head on a frozen encoder",
	Args: &trainArgs{
		Epochs:     3,
		NumSamples: 5000,
		DataDir:    "data",
		Out:        "pooler.gob",
	},
}

type trainArgs struct {
	Config     string `arg:"--config"`
	Pooling    string `arg:"--pooling"`
	Epochs     int    `arg:"--epochs"`
	NumSamples int    `arg:"--num-samples"`
	DataDir    string `arg:"--data-dir"`
	Out        string `arg:"--out"`
	Chart      string `arg:"--chart"`
}

func (args *trainArgs) Handle() error {
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
		return err
	}
	final := history[len(history)-1]
	log.Printf("final validation accuracy %.4f", final.ValAcc)
	return nil
}
