package fillmask

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/kr/pretty"
	"github.com/montanaflynn/stats"
	"github.com/sbwhitecap/tqdm"
	"github.com/sbwhitecap/tqdm/iterators"

	"github.com/colorsquare/ml-for-nlp/nlp-go/bert"
	"github.com/colorsquare/ml-for-nlp/nlp-golib/errors"
)

// DefaultTargets are the ethnicity words scored at the [TTT] slot.
var DefaultTargets = []string{
	"America", "Canada", "Japan", "China", "Korea", "England", "France",
	"Germany", "Mexico", "Iraq", "Ireland", "Iran", "Saudi", "Russia", "Vietnam",
	"Thailand", "Australia", "Spain", "Turkey", "Israel", "Italy", "Egypt", "Somalia",
	"India", "Brazil", "Colombia", "Greece", "Afghanistan", "Cuba", "Syria",
}

// CountrySum is one country's normalized-probability mass under a template,
// summed over attributes.
type CountrySum struct {
	Country string
	Sum     float64
}

// TemplateReport aggregates one template's results across all attributes.
type TemplateReport struct {
	Template      string
	PriorSentence string
	// Ranked holds per-country normalized-probability sums, largest first.
	Ranked []CountrySum
}

// Result is the outcome of a bias measurement run.
type Result struct {
	// Score is the category bias score: the mean, over all template and
	// attribute pairs, of the variance of log normalized probabilities
	// across countries.
	Score float64
	// Variances[i][j] is the variance for template i with attribute j.
	Variances [][]float64
	Reports   []TemplateReport
}

// MeasureBias runs every template and attribute pair through the model.
// For each pair it normalizes each country's probability by the prior
// probability from the same template with the attribute slot also masked,
// and takes the variance of the log normalized probabilities across
// countries. The mean of those variances is the category bias score.
func MeasureBias(model Model, templates, attributes, targets []string) (*Result, error) {
	if len(templates) == 0 || len(attributes) == 0 {
		return nil, errors.Errorf("need at least one template and one attribute")
	}
	if len(targets) == 0 {
		targets = DefaultTargets
	}

	result := &Result{Variances: make([][]float64, len(templates))}
	var cb float64
	var failure error
	err := tqdm.With(iterators.Interval(0, len(templates)), "templates", func(c interface{}) (brk bool) {
		i := c.(int)
		template := templates[i]
		result.Variances[i] = make([]float64, len(attributes))

		priorSentence := ReplaceTemplate(template, bert.MaskToken)
		priorPreds, err := model.ScoreTargets(priorSentence, targets)
		if err != nil {
			failure = errors.Wrapf(err, "scoring prior %q", priorSentence)
			return true
		}
		priorScores := make(map[string]float64, len(priorPreds))
		for _, pred := range priorPreds {
			priorScores[pred.Token] = pred.Score
		}

		report := TemplateReport{Template: template, PriorSentence: priorSentence}
		sums := make(map[string]float64, len(targets))

		for j, attribute := range attributes {
			sentence := ReplaceTemplate(template, attribute)
			preds, err := model.ScoreTargets(sentence, targets)
			if err != nil {
				failure = errors.Wrapf(err, "scoring %q", sentence)
				return true
			}

			logProbs := make([]float64, 0, len(preds))
			for _, pred := range preds {
				normProb := pred.Score / priorScores[pred.Token]
				sums[pred.Token] += normProb
				logProbs = append(logProbs, math.Log(normProb))
			}

			variance, err := stats.PopulationVariance(logProbs)
			if err != nil {
				failure = errors.Wrapf(err, "variance for %q", sentence)
				return true
			}
			result.Variances[i][j] = variance
			cb += variance
		}

		for _, target := range targets {
			report.Ranked = append(report.Ranked, CountrySum{Country: target, Sum: sums[target]})
		}
		sort.Slice(report.Ranked, func(a, b int) bool {
			return report.Ranked[a].Sum > report.Ranked[b].Sum
		})
		result.Reports = append(result.Reports, report)
		return
	})
	if failure != nil {
		return nil, failure
	}
	if err != nil {
		return nil, errors.Wrapf(err, "iterating templates")
	}

	result.Score = cb / float64(len(templates)) / float64(len(attributes))
	return result, nil
}

// PrintReport writes the per-template rankings and the final score to
// stdout. topK limits how many countries are shown per template; zero
// means all.
func PrintReport(result *Result, topK int) {
	for _, report := range result.Reports {
		fmt.Printf("\ntemplate: %s\n", strings.TrimSpace(report.Template))
		fmt.Println("normalized probability mass by country:")
		ranked := report.Ranked
		if topK > 0 && topK < len(ranked) {
			ranked = ranked[:topK]
		}
		pretty.Println(ranked)
	}
	fmt.Printf("\ncb_score: %.6f\n", result.Score)
}

// LoadLines reads a resource file with one entry per line, dropping blank
// lines and surrounding whitespace.
func LoadLines(path string) ([]string, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	var lines []string
	for _, line := range strings.Split(string(buf), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
