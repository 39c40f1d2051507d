package classification

import (
	"math"
	"math/rand"
	"sort"
)

// TreeOptions control TrainTree.
type TreeOptions struct {
	// MaxDepth bounds the number of splits on any root-to-leaf path.
	MaxDepth int
	// MinSamples is the smallest node that will still be split.
	MinSamples int
	// FeatureSample is the number of candidate features examined per split;
	// 0 means sqrt of the feature count.
	FeatureSample int
	// ThresholdSample caps the candidate thresholds per feature.
	ThresholdSample int
	Seed            int64
}

// DefaultTreeOptions are the options used by the bow-classify command.
func DefaultTreeOptions() TreeOptions {
	return TreeOptions{
		MaxDepth:        8,
		MinSamples:      5,
		ThresholdSample: 8,
		Seed:            42,
	}
}

// ForestOptions control TrainForest.
type ForestOptions struct {
	Trees int
	TreeOptions
}

// DefaultForestOptions are the options used by the bow-classify command.
func DefaultForestOptions() ForestOptions {
	return ForestOptions{Trees: 20, TreeOptions: DefaultTreeOptions()}
}

// TrainTree grows a depth-limited classification tree by greedy gini
// splitting. Leaf outputs are class-1 fractions, so Evaluate yields a
// probability.
func TrainTree(feats [][]float64, labels []int, opts TreeOptions) *DecisionTree {
	b := &treeBuilder{
		feats:  feats,
		labels: labels,
		opts:   opts,
		rng:    rand.New(rand.NewSource(opts.Seed)),
	}
	samples := make([]int, len(feats))
	for i := range samples {
		samples[i] = i
	}
	return b.grow(samples)
}

// TrainForest trains a bagged ensemble of gini trees on bootstrap samples.
func TrainForest(feats [][]float64, labels []int, opts ForestOptions) *BinaryClassifier {
	ensemble := &Ensemble{Mean: true}
	for i := 0; i < opts.Trees; i++ {
		treeOpts := opts.TreeOptions
		treeOpts.Seed = opts.Seed + int64(i)
		rng := rand.New(rand.NewSource(treeOpts.Seed))

		boot := make([]int, len(feats))
		for j := range boot {
			boot[j] = rng.Intn(len(feats))
		}
		b := &treeBuilder{feats: feats, labels: labels, opts: treeOpts, rng: rng}
		ensemble.Trees = append(ensemble.Trees, *b.grow(boot))
	}
	return &BinaryClassifier{ScorerType: "ensemble", Scorer: ensemble}
}

type treeBuilder struct {
	feats  [][]float64
	labels []int
	opts   TreeOptions
	rng    *rand.Rand

	nodes   []Node
	outputs []float64
}

func (b *treeBuilder) grow(samples []int) *DecisionTree {
	child, isLeaf := b.build(samples, 0)
	if isLeaf {
		// Bin requires at least one internal node; route everything to the
		// single leaf.
		b.nodes = append(b.nodes, Node{
			Threshold:   math.Inf(1),
			LeftChild:   child,
			LeftIsLeaf:  true,
			RightChild:  child,
			RightIsLeaf: true,
		})
	}
	depth := b.opts.MaxDepth
	if depth < 1 {
		depth = 1
	}
	dim := 0
	if len(b.feats) > 0 {
		dim = len(b.feats[0])
	}
	return &DecisionTree{
		Nodes:       b.nodes,
		Outputs:     b.outputs,
		FeatureSize: dim,
		Depth:       depth,
	}
}

// build returns the child index and whether it refers to a leaf (an index
// into Outputs) or an internal node (an index into Nodes).
func (b *treeBuilder) build(samples []int, depth int) (int, bool) {
	ones := b.countOnes(samples)
	if depth >= b.opts.MaxDepth || len(samples) < b.opts.MinSamples ||
		ones == 0 || ones == len(samples) {
		return b.leaf(samples, ones), true
	}

	feature, threshold, ok := b.bestSplit(samples)
	if !ok {
		return b.leaf(samples, ones), true
	}

	var left, right []int
	for _, s := range samples {
		if b.feats[s][feature] < threshold {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}

	// reserve the node slot before recursing so children see stable indices
	nodeIdx := len(b.nodes)
	b.nodes = append(b.nodes, Node{FeatureIndex: feature, Threshold: threshold})

	leftChild, leftIsLeaf := b.build(left, depth+1)
	rightChild, rightIsLeaf := b.build(right, depth+1)

	b.nodes[nodeIdx].LeftChild = leftChild
	b.nodes[nodeIdx].LeftIsLeaf = leftIsLeaf
	b.nodes[nodeIdx].RightChild = rightChild
	b.nodes[nodeIdx].RightIsLeaf = rightIsLeaf
	return nodeIdx, false
}

func (b *treeBuilder) leaf(samples []int, ones int) int {
	output := 0.5
	if len(samples) > 0 {
		output = float64(ones) / float64(len(samples))
	}
	b.outputs = append(b.outputs, output)
	return len(b.outputs) - 1
}

func (b *treeBuilder) countOnes(samples []int) int {
	var ones int
	for _, s := range samples {
		ones += b.labels[s]
	}
	return ones
}

func (b *treeBuilder) bestSplit(samples []int) (int, float64, bool) {
	dim := len(b.feats[0])
	numFeatures := b.opts.FeatureSample
	if numFeatures <= 0 {
		numFeatures = int(math.Sqrt(float64(dim))) + 1
	}
	if numFeatures > dim {
		numFeatures = dim
	}

	bestGini := math.Inf(1)
	bestFeature, bestThreshold := -1, 0.0

	for i := 0; i < numFeatures; i++ {
		feature := b.rng.Intn(dim)
		for _, threshold := range b.thresholds(samples, feature) {
			gini, ok := b.splitGini(samples, feature, threshold)
			if ok && gini < bestGini {
				bestGini = gini
				bestFeature = feature
				bestThreshold = threshold
			}
		}
	}
	return bestFeature, bestThreshold, bestFeature >= 0
}

// thresholds returns candidate cutoffs for a feature: midpoints between
// adjacent distinct values, downsampled to ThresholdSample entries.
func (b *treeBuilder) thresholds(samples []int, feature int) []float64 {
	seen := make(map[float64]struct{})
	var values []float64
	for _, s := range samples {
		v := b.feats[s][feature]
		if _, dup := seen[v]; !dup {
			seen[v] = struct{}{}
			values = append(values, v)
		}
	}
	if len(values) < 2 {
		return nil
	}
	sort.Float64s(values)

	var cuts []float64
	for i := 1; i < len(values); i++ {
		cuts = append(cuts, (values[i-1]+values[i])/2)
	}
	max := b.opts.ThresholdSample
	if max > 0 && len(cuts) > max {
		b.rng.Shuffle(len(cuts), func(i, j int) {
			cuts[i], cuts[j] = cuts[j], cuts[i]
		})
		cuts = cuts[:max]
	}
	return cuts
}

// splitGini returns the size-weighted gini impurity of the split, and false
// when the split leaves one side empty.
func (b *treeBuilder) splitGini(samples []int, feature int, threshold float64) (float64, bool) {
	var leftTotal, leftOnes, rightTotal, rightOnes float64
	for _, s := range samples {
		if b.feats[s][feature] < threshold {
			leftTotal++
			leftOnes += float64(b.labels[s])
		} else {
			rightTotal++
			rightOnes += float64(b.labels[s])
		}
	}
	if leftTotal == 0 || rightTotal == 0 {
		return 0, false
	}
	gini := func(total, ones float64) float64 {
		p := ones / total
		return 2 * p * (1 - p)
	}
	total := leftTotal + rightTotal
	weighted := leftTotal/total*gini(leftTotal, leftOnes) +
		rightTotal/total*gini(rightTotal, rightOnes)
	return weighted, true
}
