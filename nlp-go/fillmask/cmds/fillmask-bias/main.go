package main

import (
	"log"

	"github.com/alexflint/go-arg"

	"github.com/colorsquare/ml-for-nlp/nlp-go/fillmask"
)

func main() {
	args := struct {
		Model      string `arg:"--model" help:"trained checkpoint; omit for a random baseline"`
		Attributes string `arg:"--attributes" help:"attribute word list, one per line"`
		Templates  string `arg:"--templates" help:"sentence templates, one per line"`
		TopK       int    `arg:"--top-k" help:"countries shown per template, 0 for all"`
	}{
		Attributes: "data/occ_en.txt",
		Templates:  "data/templates_en.txt",
		TopK:       10,
	}
	arg.MustParse(&args)

	err := fillmask.Run(fillmask.RunOptions{
		ModelPath:      args.Model,
		AttributesPath: args.Attributes,
		TemplatesPath:  args.Templates,
		TopK:           args.TopK,
	})
	if err != nil {
		log.Fatalln(err)
	}
}
