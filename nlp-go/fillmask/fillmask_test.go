package fillmask

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colorsquare/ml-for-nlp/nlp-go/bert"
)

func TestPluralize(t *testing.T) {
	cases := map[string]string{
		"doctor":    "doctors",
		"nanny":     "nannies",
		"boy":       "boys",
		"boss":      "bosses",
		"mechanic":  "mechanics",
		"coach":     "coaches",
		"thief":     "thieves",
		"housewife": "housewives",
		"policeman": "policemen",
		"person":    "people",
	}
	for singular, plural := range cases {
		assert.Equal(t, plural, Pluralize(singular), singular)
	}
}

func TestReplaceTemplate(t *testing.T) {
	assert.Equal(t, "People from [MASK] work as doctors.",
		ReplaceTemplate("People from [TTT] work as [AAAs].", "doctor"))
	assert.Equal(t, "A doctor from [MASK] arrived.",
		ReplaceTemplate("A [AAA] from [TTT] arrived.", "doctor"))
}

func TestReplaceTemplatePrior(t *testing.T) {
	// the prior sentence masks the attribute slot as well
	prior := ReplaceTemplate("People from [TTT] work as [AAAs].", bert.MaskToken)
	assert.Equal(t, "People from [MASK] work as [MASK].", prior)
}

// fakeModel returns fixed scores per sentence, keyed by target.
type fakeModel struct {
	scores map[string]map[string]float64
	calls  int
}

func (f *fakeModel) ScoreTargets(sentence string, targets []string) ([]Prediction, error) {
	f.calls++
	var preds []Prediction
	for _, target := range targets {
		preds = append(preds, Prediction{
			Token:    target,
			Score:    f.scores[sentence][target],
			Sequence: strings.Replace(sentence, bert.MaskToken, target, 1),
		})
	}
	return preds, nil
}

func TestMeasureBias(t *testing.T) {
	template := "[AAA] of [TTT]."
	prior := "[MASK] of [MASK]."
	target := "doctor of [MASK]."
	model := &fakeModel{scores: map[string]map[string]float64{
		prior:  {"America": 0.2, "Canada": 0.1},
		target: {"America": 0.4, "Canada": 0.1},
	}}

	result, err := MeasureBias(model, []string{template}, []string{"doctor"}, []string{"America", "Canada"})
	require.NoError(t, err)

	// normalized probs are 2 and 1; population variance of {ln 2, 0}
	ln2 := math.Log(2)
	want := ln2 * ln2 / 4
	assert.InDelta(t, want, result.Score, 1e-9)
	require.Len(t, result.Variances, 1)
	assert.InDelta(t, want, result.Variances[0][0], 1e-9)

	require.Len(t, result.Reports, 1)
	ranked := result.Reports[0].Ranked
	require.Len(t, ranked, 2)
	assert.Equal(t, "America", ranked[0].Country)
	assert.InDelta(t, 2.0, ranked[0].Sum, 1e-9)
	assert.Equal(t, "Canada", ranked[1].Country)
}

func TestMeasureBiasEmptyInput(t *testing.T) {
	_, err := MeasureBias(&fakeModel{}, nil, nil, nil)
	require.Error(t, err)
}

func TestCachedModelMemoizes(t *testing.T) {
	inner := &fakeModel{scores: map[string]map[string]float64{
		"a [MASK] b": {"x": 0.5},
	}}
	model, err := NewCached(inner, 8)
	require.NoError(t, err)

	first, err := model.ScoreTargets("a [MASK] b", []string{"x"})
	require.NoError(t, err)
	second, err := model.ScoreTargets("a [MASK] b", []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)

	_, err = model.ScoreTargets("a [MASK] b", []string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls, "different targets miss the cache")
}

func testEncoder(t *testing.T, corpus []string) (*bert.Encoder, *bert.TokenVocab) {
	t.Helper()
	vocab := bert.BuildTokenVocab(corpus, 64)
	config := bert.DefaultConfig()
	config.VocabSize = vocab.Size()
	config.HiddenSize = 8
	config.NumLayers = 1
	config.NumHeads = 2
	config.IntermediateSize = 16
	config.MaxSeqLen = 8
	require.NoError(t, config.Validate())
	return bert.NewEncoder(config), vocab
}

func TestMaskedLMScoreTargets(t *testing.T) {
	corpus := []string{"people from america", "people from canada"}
	encoder, vocab := testEncoder(t, corpus)
	model := NewMaskedLM(encoder, vocab)

	preds, err := model.ScoreTargets("people from [MASK]", []string{"America", "Canada"})
	require.NoError(t, err)
	require.Len(t, preds, 2)
	for _, pred := range preds {
		assert.True(t, pred.Score > 0 && pred.Score < 1, pred.Token)
	}
	assert.Equal(t, "people from America", preds[0].Sequence)
	assert.NotEqual(t, preds[0].TokenID, preds[1].TokenID)
}

func TestMaskedLMMaskNextToPunctuation(t *testing.T) {
	corpus := []string{"this doctor comes from america."}
	encoder, vocab := testEncoder(t, corpus)
	model := NewMaskedLM(encoder, vocab)

	sentence := ReplaceTemplate("This [AAA] comes from [TTT].", "doctor")
	preds, err := model.ScoreTargets(sentence, []string{"America", "Canada"})
	require.NoError(t, err)
	require.Len(t, preds, 2)
	for _, pred := range preds {
		assert.True(t, pred.Score > 0, pred.Token)
	}
}

func TestMeasureBiasPunctuatedTemplate(t *testing.T) {
	corpus := []string{"this doctor comes from america.", "this doctor comes from canada."}
	encoder, vocab := testEncoder(t, corpus)
	model := NewMaskedLM(encoder, vocab)

	result, err := MeasureBias(model,
		[]string{"This [AAA] comes from [TTT]."},
		[]string{"doctor"},
		[]string{"America", "Canada"})
	require.NoError(t, err)
	require.Len(t, result.Variances, 1)
	assert.False(t, math.IsNaN(result.Score))
	assert.False(t, math.IsInf(result.Score, 0))
}

func TestMaskedLMRequiresMask(t *testing.T) {
	encoder, vocab := testEncoder(t, []string{"people from america"})
	model := NewMaskedLM(encoder, vocab)
	_, err := model.ScoreTargets("people from america", []string{"America"})
	require.Error(t, err)
}
