package bert

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/colorsquare/ml-for-nlp/nlp-golib/errors"
	"github.com/colorsquare/ml-for-nlp/nlp-golib/mathutil"
)

// Pooler reduces the encoder's [seqLen x hidden] output to a single vector,
// then applies tanh(Wx + b). The reduction depends on the configured pooling
// layer type; the dense projection is the trainable part.
type Pooler struct {
	Type string
	// TopK is the per-dimension k for the TOPK_MEAN family.
	TopK   int
	Hidden int
	Dense  *Linear

	// caches for backward
	lastFeature []float64
	lastOut     []float64
}

// NewPooler builds the pooler named by config.PoolingLayerType. Unknown
// types are rejected.
func NewPooler(rng *rand.Rand, config Config) (*Pooler, error) {
	var featDim int
	switch config.PoolingLayerType {
	case PoolingCLS, PoolingTopKMean, PoolingTopHalfMean:
		featDim = config.HiddenSize
	case PoolingMeanMax, PoolingMeanCLS, PoolingTopKMeanCLS:
		featDim = 2 * config.HiddenSize
	default:
		return nil, errors.Errorf("wrong pooling_layer_type: %s", config.PoolingLayerType)
	}
	return &Pooler{
		Type:   config.PoolingLayerType,
		TopK:   config.TopK,
		Hidden: config.HiddenSize,
		Dense:  NewLinear(rng, featDim, config.HiddenSize),
	}, nil
}

// Pool reduces hidden states to a fixed vector. pad marks rows that hold
// [PAD] tokens; those never contribute to mean, max or top-k statistics.
func (p *Pooler) Pool(hidden *mat.Dense, pad []bool) []float64 {
	var feature []float64
	switch p.Type {
	case PoolingCLS:
		feature = clsRow(hidden)
	case PoolingMeanMax:
		feature = append(meanRows(hidden, pad), maxRows(hidden, pad)...)
	case PoolingTopKMean:
		feature = topKMeanRows(hidden, pad, p.TopK)
	case PoolingTopHalfMean:
		feature = topKMeanRows(hidden, pad, (validRows(pad)+1)/2)
	case PoolingMeanCLS:
		feature = append(meanRows(hidden, pad), clsRow(hidden)...)
	case PoolingTopKMeanCLS:
		feature = append(topKMeanRows(hidden, pad, p.TopK), clsRow(hidden)...)
	}
	p.lastFeature = feature
	out := p.Dense.Forward(feature)
	for i, v := range out {
		out[i] = math.Tanh(v)
	}
	p.lastOut = out
	return out
}

// Backward propagates dOut through the tanh and the dense projection,
// accumulating gradients. The reduction itself has no parameters and the
// encoder below it is frozen, so the input gradient is dropped.
func (p *Pooler) Backward(dOut []float64) {
	dPre := make([]float64, len(dOut))
	for i, d := range dOut {
		dPre[i] = d * (1 - p.lastOut[i]*p.lastOut[i])
	}
	p.Dense.Backward(p.lastFeature, dPre)
}

func validRows(pad []bool) int {
	n := 0
	for _, isPad := range pad {
		if !isPad {
			n++
		}
	}
	return n
}

func clsRow(hidden *mat.Dense) []float64 {
	_, cols := hidden.Dims()
	out := make([]float64, cols)
	copy(out, hidden.RawRowView(0))
	return out
}

func meanRows(hidden *mat.Dense, pad []bool) []float64 {
	rows, cols := hidden.Dims()
	out := make([]float64, cols)
	n := 0
	for i := 0; i < rows; i++ {
		if pad[i] {
			continue
		}
		row := hidden.RawRowView(i)
		for j := 0; j < cols; j++ {
			out[j] += row[j]
		}
		n++
	}
	if n == 0 {
		return out
	}
	for j := range out {
		out[j] /= float64(n)
	}
	return out
}

func maxRows(hidden *mat.Dense, pad []bool) []float64 {
	rows, cols := hidden.Dims()
	out := make([]float64, cols)
	for j := range out {
		out[j] = math.Inf(-1)
	}
	for i := 0; i < rows; i++ {
		if pad[i] {
			continue
		}
		row := hidden.RawRowView(i)
		for j := 0; j < cols; j++ {
			if row[j] > out[j] {
				out[j] = row[j]
			}
		}
	}
	return out
}

// topKMeanRows averages the k largest values per hidden dimension across the
// non-pad rows. k is clamped to the number of valid rows.
func topKMeanRows(hidden *mat.Dense, pad []bool, k int) []float64 {
	rows, cols := hidden.Dims()
	valid := validRows(pad)
	if k > valid {
		k = valid
	}
	if k < 1 {
		k = 1
	}
	out := make([]float64, cols)
	column := make([]float64, 0, valid)
	for j := 0; j < cols; j++ {
		column = column[:0]
		for i := 0; i < rows; i++ {
			if pad[i] {
				continue
			}
			column = append(column, hidden.At(i, j))
		}
		sum := 0.0
		for _, idx := range mathutil.TopKIndices(column, k) {
			sum += column[idx]
		}
		out[j] = sum / float64(k)
	}
	return out
}
