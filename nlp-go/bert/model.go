package bert

import (
	"encoding/gob"
	"math/rand"
	"os"

	"github.com/colorsquare/ml-for-nlp/nlp-golib/errors"
)

// Model is an encoder with a pooler and a linear classification head. The
// encoder weights are frozen; training updates the pooler projection and the
// classifier only.
type Model struct {
	Config     Config
	Encoder    *Encoder
	Pooler     *Pooler
	Classifier *Linear
	// Vocab is the token vocabulary the embeddings were built against. It
	// travels with checkpoints so downstream consumers encode text the
	// same way.
	Vocab *TokenVocab

	rng      *rand.Rand
	training bool

	// caches for backward
	dropMask []float64
	dropped  []float64
}

// NewModel builds a randomly initialized model from config.
func NewModel(config Config) (*Model, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(config.Seed))
	pooler, err := NewPooler(rng, config)
	if err != nil {
		return nil, err
	}
	return &Model{
		Config:     config,
		Encoder:    NewEncoder(config),
		Pooler:     pooler,
		Classifier: NewLinear(rng, config.HiddenSize, config.NumLabels),
		rng:        rng,
	}, nil
}

// Train toggles training mode, which enables dropout.
func (m *Model) Train(on bool) {
	m.training = on
}

// Forward runs one encoded sequence through the model and returns the
// class logits.
func (m *Model) Forward(ids []int) []float64 {
	hidden := m.Encoder.Forward(ids)
	pad := padMask(ids)
	pooled := m.Pooler.Pool(hidden, pad)
	m.dropped = m.dropout(pooled)
	return m.Classifier.Forward(m.dropped)
}

// Backward propagates the logit gradient into the head parameters.
func (m *Model) Backward(dLogits []float64) {
	dDropped := m.Classifier.Backward(m.dropped, dLogits)
	if m.dropMask != nil {
		for i := range dDropped {
			dDropped[i] *= m.dropMask[i]
		}
	}
	m.Pooler.Backward(dDropped)
}

// Params returns the trainable parameters, pooler projection and classifier.
func (m *Model) Params() []Param {
	return append(m.Pooler.Dense.Params(), m.Classifier.Params()...)
}

// dropout applies inverted dropout in training mode and is the identity
// otherwise.
func (m *Model) dropout(x []float64) []float64 {
	if !m.training || m.Config.Dropout <= 0 {
		m.dropMask = nil
		return x
	}
	keep := 1 - m.Config.Dropout
	m.dropMask = make([]float64, len(x))
	out := make([]float64, len(x))
	for i, v := range x {
		if m.rng.Float64() < keep {
			m.dropMask[i] = 1 / keep
			out[i] = v / keep
		}
	}
	return out
}

func padMask(ids []int) []bool {
	pad := make([]bool, len(ids))
	for i, id := range ids {
		pad[i] = id == 0 // [PAD] id is 0 by construction
	}
	return pad
}

// tensors lists every weight slice in a fixed traversal order. Checkpoints
// store these slices; loading copies them back into a freshly built model of
// the same config, so shapes always match.
func (m *Model) tensors() [][]float64 {
	out := [][]float64{
		m.Encoder.TokenEmbed.RawMatrix().Data,
		m.Encoder.PosEmbed.RawMatrix().Data,
	}
	for _, l := range m.Encoder.Layers {
		out = append(out,
			l.Wq.RawMatrix().Data,
			l.Wk.RawMatrix().Data,
			l.Wv.RawMatrix().Data,
			l.Wo.RawMatrix().Data,
			l.Norm1.Gamma.RawVector().Data,
			l.Norm1.Beta.RawVector().Data,
			l.Norm2.Gamma.RawVector().Data,
			l.Norm2.Beta.RawVector().Data,
			l.W1.RawMatrix().Data,
			l.B1.RawVector().Data,
			l.W2.RawMatrix().Data,
			l.B2.RawVector().Data,
		)
	}
	out = append(out,
		m.Pooler.Dense.W.RawMatrix().Data,
		m.Pooler.Dense.B.RawVector().Data,
		m.Classifier.W.RawMatrix().Data,
		m.Classifier.B.RawVector().Data,
	)
	return out
}

// checkpoint is the gob payload for Save and LoadModel.
type checkpoint struct {
	Config  Config
	Tokens  []string
	Tensors [][]float64
}

// Save writes the model weights to path.
func (m *Model) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating checkpoint %s", path)
	}
	defer f.Close()
	ckpt := checkpoint{Config: m.Config, Tensors: m.tensors()}
	if m.Vocab != nil {
		ckpt.Tokens = m.Vocab.Tokens
	}
	if err := gob.NewEncoder(f).Encode(ckpt); err != nil {
		return errors.Wrapf(err, "encoding checkpoint %s", path)
	}
	return nil
}

// LoadModel restores a model saved with Save.
func LoadModel(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening checkpoint %s", path)
	}
	defer f.Close()
	var ckpt checkpoint
	if err := gob.NewDecoder(f).Decode(&ckpt); err != nil {
		return nil, errors.Wrapf(err, "decoding checkpoint %s", path)
	}

	model, err := NewModel(ckpt.Config)
	if err != nil {
		return nil, err
	}
	dst := model.tensors()
	if len(dst) != len(ckpt.Tensors) {
		return nil, errors.Errorf("checkpoint %s has %d tensors, model expects %d",
			path, len(ckpt.Tensors), len(dst))
	}
	for i, src := range ckpt.Tensors {
		if len(dst[i]) != len(src) {
			return nil, errors.Errorf("checkpoint %s tensor %d has %d values, model expects %d",
				path, i, len(src), len(dst[i]))
		}
		copy(dst[i], src)
	}
	if len(ckpt.Tokens) > 0 {
		model.Vocab = NewTokenVocabFromTokens(ckpt.Tokens)
	}
	return model, nil
}
