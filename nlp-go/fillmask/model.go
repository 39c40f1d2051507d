// Package fillmask scores fill-in-the-blank queries against a masked
// language model and measures how unevenly the model fills an ethnicity
// slot across attribute words.
package fillmask

import (
	"strings"

	"github.com/colorsquare/ml-for-nlp/nlp-go/bert"
	"github.com/colorsquare/ml-for-nlp/nlp-golib/errors"
	"github.com/colorsquare/ml-for-nlp/nlp-golib/mathutil"
)

// Prediction is one candidate filling of the first [MASK] slot.
type Prediction struct {
	TokenID  int
	Token    string
	Score    float64
	Sequence string
}

// Model scores candidate tokens for the first [MASK] slot of a sentence.
type Model interface {
	ScoreTargets(sentence string, targets []string) ([]Prediction, error)
}

// MaskedLM predicts masked tokens with a transformer encoder and an output
// projection tied to the token embeddings.
type MaskedLM struct {
	encoder *bert.Encoder
	vocab   *bert.TokenVocab
}

// NewMaskedLM wraps an encoder and its vocabulary as a fill-mask model.
func NewMaskedLM(encoder *bert.Encoder, vocab *bert.TokenVocab) *MaskedLM {
	return &MaskedLM{encoder: encoder, vocab: vocab}
}

// ScoreTargets returns the model's probability for each target at the first
// [MASK] position. Scores are the softmax over the full vocabulary, so they
// are comparable across sentences.
func (m *MaskedLM) ScoreTargets(sentence string, targets []string) ([]Prediction, error) {
	ids := m.vocab.Encode(sentence, m.encoder.Config.MaxSeqLen)
	maskPos := -1
	for i, id := range ids {
		if id == m.vocab.ID(bert.MaskToken) {
			maskPos = i
			break
		}
	}
	if maskPos < 0 {
		return nil, errors.Errorf("no %s slot in %q", bert.MaskToken, sentence)
	}

	hidden := m.encoder.Forward(ids)
	probs := mathutil.Softmax(m.vocabLogits(hidden.RawRowView(maskPos)))

	preds := make([]Prediction, 0, len(targets))
	for _, target := range targets {
		tok := strings.ToLower(target)
		id := m.vocab.ID(tok)
		preds = append(preds, Prediction{
			TokenID:  id,
			Token:    target,
			Score:    probs[id],
			Sequence: strings.Replace(sentence, bert.MaskToken, target, 1),
		})
	}
	return preds, nil
}

// vocabLogits projects a hidden state onto the vocabulary through the tied
// token embedding matrix.
func (m *MaskedLM) vocabLogits(h []float64) []float64 {
	vocabSize, hiddenSize := m.encoder.TokenEmbed.Dims()
	logits := make([]float64, vocabSize)
	for i := 0; i < vocabSize; i++ {
		row := m.encoder.TokenEmbed.RawRowView(i)
		var sum float64
		for j := 0; j < hiddenSize; j++ {
			sum += row[j] * h[j]
		}
		logits[i] = sum
	}
	return logits
}
