package bert

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/colorsquare/ml-for-nlp/nlp-golib/mathutil"
)

// Encoder is a bidirectional transformer encoder: token and position
// embeddings followed by pre-norm self-attention blocks. It produces the
// last hidden states that the pooling layers reduce.
type Encoder struct {
	Config     Config
	TokenEmbed *mat.Dense // vocabSize x hidden
	PosEmbed   *mat.Dense // maxSeqLen x hidden
	Layers     []*EncoderLayer
}

// EncoderLayer is one self-attention block.
type EncoderLayer struct {
	Wq, Wk, Wv, Wo *mat.Dense // hidden x hidden
	Norm1, Norm2   *LayerNorm
	W1             *mat.Dense // hidden x intermediate
	B1             *mat.VecDense
	W2             *mat.Dense // intermediate x hidden
	B2             *mat.VecDense
}

// LayerNorm normalizes each row to zero mean and unit variance, then applies
// a learned scale and shift.
type LayerNorm struct {
	Gamma, Beta *mat.VecDense
	Eps         float64
}

// NewEncoder builds a randomly initialized encoder. The rng seed comes from
// the config so that runs are reproducible.
func NewEncoder(config Config) *Encoder {
	rng := rand.New(rand.NewSource(config.Seed))
	e := &Encoder{
		Config:     config,
		TokenEmbed: randDense(rng, config.VocabSize, config.HiddenSize),
		PosEmbed:   randDense(rng, config.MaxSeqLen, config.HiddenSize),
	}
	for i := 0; i < config.NumLayers; i++ {
		e.Layers = append(e.Layers, newEncoderLayer(rng, config))
	}
	return e
}

func newEncoderLayer(rng *rand.Rand, config Config) *EncoderLayer {
	h, inter := config.HiddenSize, config.IntermediateSize
	return &EncoderLayer{
		Wq:    randDense(rng, h, h),
		Wk:    randDense(rng, h, h),
		Wv:    randDense(rng, h, h),
		Wo:    randDense(rng, h, h),
		Norm1: newLayerNorm(h),
		Norm2: newLayerNorm(h),
		W1:    randDense(rng, h, inter),
		B1:    mat.NewVecDense(inter, nil),
		W2:    randDense(rng, inter, h),
		B2:    mat.NewVecDense(h, nil),
	}
}

func newLayerNorm(dim int) *LayerNorm {
	gamma := mat.NewVecDense(dim, nil)
	for i := 0; i < dim; i++ {
		gamma.SetVec(i, 1)
	}
	return &LayerNorm{Gamma: gamma, Beta: mat.NewVecDense(dim, nil), Eps: 1e-5}
}

// randDense samples a rows x cols matrix from N(0, 0.02^2).
func randDense(rng *rand.Rand, rows, cols int) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.NormFloat64() * 0.02
	}
	return mat.NewDense(rows, cols, data)
}

// Forward returns the last hidden states, one row per input position.
// Attention from any position to [PAD] positions is masked out.
func (e *Encoder) Forward(ids []int) *mat.Dense {
	seqLen := len(ids)
	h := e.Config.HiddenSize

	x := mat.NewDense(seqLen, h, nil)
	for i, id := range ids {
		for j := 0; j < h; j++ {
			x.Set(i, j, e.TokenEmbed.At(id, j)+e.PosEmbed.At(i, j))
		}
	}

	mask := make([]bool, seqLen)
	for i, id := range ids {
		mask[i] = id == 0 // [PAD] id is 0 by construction
	}

	for _, layer := range e.Layers {
		x = layer.forward(x, mask, e.Config.NumHeads)
	}
	return x
}

func (l *EncoderLayer) forward(x *mat.Dense, pad []bool, numHeads int) *mat.Dense {
	seqLen, h := x.Dims()

	// attention sublayer, pre-norm residual
	normed := l.Norm1.Apply(x)
	attn := l.attention(normed, pad, numHeads)
	res1 := mat.NewDense(seqLen, h, nil)
	res1.Add(x, attn)

	// feed-forward sublayer
	normed2 := l.Norm2.Apply(res1)
	ff := l.feedForward(normed2)
	out := mat.NewDense(seqLen, h, nil)
	out.Add(res1, ff)
	return out
}

func (l *EncoderLayer) attention(x *mat.Dense, pad []bool, numHeads int) *mat.Dense {
	seqLen, h := x.Dims()
	headDim := h / numHeads
	scale := 1 / math.Sqrt(float64(headDim))

	var q, k, v mat.Dense
	q.Mul(x, l.Wq)
	k.Mul(x, l.Wk)
	v.Mul(x, l.Wv)

	concat := mat.NewDense(seqLen, h, nil)
	for head := 0; head < numHeads; head++ {
		lo, hi := head*headDim, (head+1)*headDim
		qh := q.Slice(0, seqLen, lo, hi)
		kh := k.Slice(0, seqLen, lo, hi)
		vh := v.Slice(0, seqLen, lo, hi)

		var scores mat.Dense
		scores.Mul(qh, kh.T())
		scores.Scale(scale, &scores)

		for i := 0; i < seqLen; i++ {
			row := make([]float64, seqLen)
			for j := 0; j < seqLen; j++ {
				s := scores.At(i, j)
				if pad[j] {
					s = math.Inf(-1)
				}
				row[j] = s
			}
			probs := mathutil.Softmax(row)
			for j := 0; j < seqLen; j++ {
				scores.Set(i, j, probs[j])
			}
		}

		var oh mat.Dense
		oh.Mul(&scores, vh)
		concat.Slice(0, seqLen, lo, hi).(*mat.Dense).Copy(&oh)
	}

	var out mat.Dense
	out.Mul(concat, l.Wo)
	return &out
}

func (l *EncoderLayer) feedForward(x *mat.Dense) *mat.Dense {
	seqLen, _ := x.Dims()

	var hidden mat.Dense
	hidden.Mul(x, l.W1)
	inter := hidden.RawMatrix().Cols
	for i := 0; i < seqLen; i++ {
		for j := 0; j < inter; j++ {
			hidden.Set(i, j, gelu(hidden.At(i, j)+l.B1.AtVec(j)))
		}
	}

	var out mat.Dense
	out.Mul(&hidden, l.W2)
	rows, cols := out.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, out.At(i, j)+l.B2.AtVec(j))
		}
	}
	return &out
}

// Apply normalizes each row of x.
func (ln *LayerNorm) Apply(x *mat.Dense) *mat.Dense {
	rows, cols := x.Dims()
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		row := x.RawRowView(i)
		var mean float64
		for _, v := range row {
			mean += v
		}
		mean /= float64(cols)

		var variance float64
		for _, v := range row {
			variance += (v - mean) * (v - mean)
		}
		variance /= float64(cols)

		inv := 1 / math.Sqrt(variance+ln.Eps)
		for j, v := range row {
			out.Set(i, j, (v-mean)*inv*ln.Gamma.AtVec(j)+ln.Beta.AtVec(j))
		}
	}
	return out
}

// gelu is the gaussian error linear unit with the tanh approximation.
func gelu(x float64) float64 {
	return 0.5 * x * (1 + math.Tanh(math.Sqrt(2/math.Pi)*(x+0.044715*x*x*x)))
}
