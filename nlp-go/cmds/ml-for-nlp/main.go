package main

import (
	"github.com/colorsquare/ml-for-nlp/nlp-golib/cmdline"
)

func main() {
	cmdline.MustDispatch(classifyCmd, trainCmd, biasCmd)
}
