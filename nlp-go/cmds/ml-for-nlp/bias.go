package main

import (
	"github.com/colorsquare/ml-for-nlp/nlp-go/fillmask"
	"github.com/colorsquare/ml-for-nlp/nlp-golib/cmdline"
)

var biasCmd = cmdline.Command{
	Name:     "bias",
	Synopsis: "measure ethnic bias of a masked language model with fill-mask probes",
	Args: &biasArgs{
		Attributes: "data/occ_en.txt",
		Templates:  "data/templates_en.txt",
		TopK:       10,
	},
}

type biasArgs struct {
	Model      string `arg:"--model"`
	Attributes string `arg:"--attributes"`
	Templates  string `arg:"--templates"`
	TopK       int    `arg:"--top-k"`
}

func (args *biasArgs) Handle() error {
	return fillmask.Run(fillmask.RunOptions{
		ModelPath:      args.Model,
		AttributesPath: args.Attributes,
		TemplatesPath:  args.Templates,
		TopK:           args.TopK,
	})
}
