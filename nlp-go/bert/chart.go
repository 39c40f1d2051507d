package bert

import (
	"os"

	chart "github.com/wcharczuk/go-chart"

	"github.com/colorsquare/ml-for-nlp/nlp-golib/errors"
)

// SaveAccuracyChart renders the per-epoch train and validation accuracy
// curves to a PNG at path.
func SaveAccuracyChart(path string, history []EpochStats) error {
	if len(history) == 0 {
		return errors.Errorf("no epochs to chart")
	}

	epochs := make([]float64, 0, len(history))
	trainAcc := make([]float64, 0, len(history))
	valAcc := make([]float64, 0, len(history))
	for _, stats := range history {
		epochs = append(epochs, float64(stats.Epoch))
		trainAcc = append(trainAcc, stats.TrainAcc)
		valAcc = append(valAcc, stats.ValAcc)
	}

	graph := chart.Chart{
		Title:      "Accuracy by epoch",
		TitleStyle: chart.StyleShow(),
		XAxis: chart.XAxis{
			Name:      "Epoch",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		YAxis: chart.YAxis{
			Name:      "Accuracy",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "train",
				XValues: epochs,
				YValues: trainAcc,
				Style: chart.Style{
					Show:        true,
					StrokeColor: chart.GetAlternateColor(0),
				},
			},
			chart.ContinuousSeries{
				Name:    "validation",
				XValues: epochs,
				YValues: valAcc,
				Style: chart.Style{
					Show:        true,
					StrokeColor: chart.GetAlternateColor(1),
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{
		chart.Legend(&graph),
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating chart %s", path)
	}
	defer f.Close()
	if err := graph.Render(chart.PNG, f); err != nil {
		return errors.Wrapf(err, "rendering chart %s", path)
	}
	return nil
}
