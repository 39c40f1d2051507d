package bow

import (
	"fmt"
	"log"
	"math/rand"

	humanize "github.com/dustin/go-humanize"
	"github.com/montanaflynn/stats"
	"github.com/sbwhitecap/tqdm"
	"github.com/sbwhitecap/tqdm/iterators"

	"github.com/colorsquare/ml-for-nlp/nlp-go/classification"
	"github.com/colorsquare/ml-for-nlp/nlp-golib/errors"
	"github.com/colorsquare/ml-for-nlp/nlp-golib/text"
)

// Classifier names accepted by Run.
const (
	ClassifierLogistic   = "logistic"
	ClassifierPerceptron = "perceptron"
	ClassifierNaiveBayes = "naive-bayes"
	ClassifierForest     = "forest"
	ClassifierHashedNB   = "hashed-nb"
)

// Options configure a bag-of-words training run.
type Options struct {
	DataDir    string
	NumSamples int
	NGram      int
	Classifier string
	// Stem applies Porter stemming to tokens before features are built.
	Stem    bool
	Verbose bool
}

// Result summarizes a training run.
type Result struct {
	VocabSize   int
	ValAccuracy float64
}

// Run downloads and loads the review dataset, builds the n-gram vocabulary
// from the train split, trains the requested classifier and reports
// validation accuracy.
func Run(opts Options) (*Result, error) {
	path, err := DownloadDataset(opts.DataDir, opts.NumSamples)
	if err != nil {
		return nil, err
	}
	ds, err := LoadDataset(path, opts.NumSamples, 0.8)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		logDatasetSummary(ds)
	}

	if opts.Classifier == ClassifierHashedNB {
		return runHashed(ds, opts)
	}

	log.Println("[train] vocab construction")
	vocab := NewVocabulary(ds.TrainReviews, opts.NGram)
	if opts.Stem {
		vocab = NewStemmedVocabulary(ds.TrainReviews, opts.NGram)
	}
	log.Printf("[vocab] %s features", humanize.Comma(int64(vocab.Size())))

	trainVecs := encodeAll(vocab, ds.TrainReviews, "Encoding train reviews")
	valVecs := encodeAll(vocab, ds.ValReviews, "Encoding validation reviews")

	var clf *classification.BinaryClassifier
	switch opts.Classifier {
	case ClassifierLogistic:
		clf = classification.TrainLogisticRegression(trainVecs, ds.TrainLabels, classification.DefaultLogisticOptions())
	case ClassifierPerceptron:
		clf = classification.TrainPerceptron(trainVecs, ds.TrainLabels, classification.DefaultPerceptronOptions())
	case ClassifierNaiveBayes:
		clf = classification.TrainNaiveBayes(trainVecs, ds.TrainLabels, 1.0)
	case ClassifierForest:
		clf = classification.TrainForest(trainVecs, ds.TrainLabels, classification.DefaultForestOptions())
	default:
		return nil, errors.Errorf("unknown classifier %q", opts.Classifier)
	}

	accuracy := classification.Accuracy(clf, valVecs, ds.ValLabels)
	log.Printf("[validation] accuracy: %.4f", accuracy)

	if opts.Verbose {
		preds := make([]int, len(valVecs))
		for i, vec := range valVecs {
			preds[i] = clf.Predict(vec)
		}
		printErrorExamples(ds.ValReviews, preds, ds.ValLabels)
	}

	return &Result{VocabSize: vocab.Size(), ValAccuracy: accuracy}, nil
}

func runHashed(ds *Dataset, opts Options) (*Result, error) {
	tokenize := func(review string) text.Tokens {
		toks := text.Tokenize(review, 1)
		if opts.Stem {
			toks = text.Stem(toks)
		}
		return toks
	}

	docs := make([]text.Tokens, 0, len(ds.TrainReviews))
	for _, review := range ds.TrainReviews {
		docs = append(docs, tokenize(review))
	}
	scorer := classification.TrainHashedScorer(docs, ds.TrainLabels)

	var correct int
	preds := make([]int, len(ds.ValReviews))
	for i, review := range ds.ValReviews {
		preds[i] = scorer.Predict(tokenize(review))
		if preds[i] == ds.ValLabels[i] {
			correct++
		}
	}
	accuracy := float64(correct) / float64(len(ds.ValLabels))
	log.Printf("[validation] accuracy: %.4f", accuracy)
	if opts.Verbose {
		printErrorExamples(ds.ValReviews, preds, ds.ValLabels)
	}
	return &Result{ValAccuracy: accuracy}, nil
}

func encodeAll(vocab *Vocabulary, reviews []string, title string) [][]float64 {
	vectors := make([][]float64, len(reviews))
	err := tqdm.With(iterators.Interval(0, len(reviews)), title, func(c interface{}) (brk bool) {
		i := c.(int)
		vectors[i] = vocab.Encode(reviews[i])
		return
	})
	if err != nil {
		log.Printf("progress: %v", err)
	}
	return vectors
}

func logDatasetSummary(ds *Dataset) {
	log.Printf("[num train]: %d, [num validation]: %d", len(ds.TrainLabels), len(ds.ValLabels))
	if len(ds.TrainReviews) > 1 {
		log.Printf("[example of xs]: [%q, %q, ...]", clip(ds.TrainReviews[0], 70), clip(ds.TrainReviews[1], 70))
		log.Printf("[example of ys]: [%d, %d, ...]", ds.TrainLabels[0], ds.TrainLabels[1])
	}

	lengths := make([]float64, 0, len(ds.TrainReviews))
	for _, review := range ds.TrainReviews {
		lengths = append(lengths, float64(len(text.Tokenize(review, 1))))
	}
	mean, _ := stats.Mean(lengths)
	median, _ := stats.Median(lengths)
	log.Printf("[train tokens] mean: %.1f, median: %.1f", mean, median)
}

func printErrorExamples(reviews []string, preds, labels []int) {
	idx := rand.New(rand.NewSource(shuffleSeed)).Perm(len(reviews))
	var correct, wrong []string
	for _, i := range idx {
		if preds[i] == labels[i] {
			correct = append(correct, reviews[i])
		} else {
			wrong = append(wrong, reviews[i])
		}
	}

	fmt.Println("\n[Correct Sample Examples]")
	for _, line := range head(correct, 5) {
		fmt.Printf("\t- %s\n", clip(line, 120))
	}
	fmt.Println("\n[Wrong Sample Examples]")
	for _, line := range head(wrong, 5) {
		fmt.Printf("\t- %s\n", clip(line, 120))
	}
}

func head(lines []string, n int) []string {
	if len(lines) < n {
		return lines
	}
	return lines[:n]
}

// clip shortens s to at most n runes. Reviews can contain multi-byte
// characters, so byte slicing would split a rune.
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
