package classification

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeDepthOne(t *testing.T) {
	node := Node{
		FeatureIndex: 0,
		Threshold:    2.5,
		LeftChild:    0,
		LeftIsLeaf:   true,
		RightChild:   1,
		RightIsLeaf:  true,
	}
	tree := DecisionTree{
		Nodes:       []Node{node},
		Outputs:     []float64{0.25, 0.75},
		FeatureSize: 2,
		Depth:       1,
	}
	x1 := []float64{1., 0.}
	x2 := []float64{5., 0.}
	assert.Equal(t, 0, tree.Bin(x1), "")
	assert.Equal(t, 0.25, tree.Evaluate(x1), "")
	assert.Equal(t, 1, tree.Bin(x2), "")
	assert.Equal(t, 0.75, tree.Evaluate(x2), "")
}

func TestTreeDepthTwo(t *testing.T) {
	root := Node{
		FeatureIndex: 0,
		Threshold:    2.5,
		LeftChild:    1,
		LeftIsLeaf:   false,
		RightChild:   2,
		RightIsLeaf:  false,
	}
	left := Node{
		FeatureIndex: 1,
		Threshold:    0.,
		LeftChild:    0,
		LeftIsLeaf:   true,
		RightChild:   1,
		RightIsLeaf:  true,
	}
	right := Node{
		FeatureIndex: 1,
		Threshold:    1.,
		LeftChild:    2,
		LeftIsLeaf:   true,
		RightChild:   3,
		RightIsLeaf:  true,
	}
	tree := DecisionTree{
		Nodes:       []Node{root, left, right},
		FeatureSize: 2,
		Depth:       2,
	}
	assert.Equal(t, 0, tree.Bin([]float64{1., -1.}), "")
	assert.Equal(t, 1, tree.Bin([]float64{1., 1.}), "")
	assert.Equal(t, 2, tree.Bin([]float64{5., -2.}), "")
	assert.Equal(t, 3, tree.Bin([]float64{5., 2.}), "")
}

func TestTrainTree(t *testing.T) {
	feats, labels := separableData()
	tree := TrainTree(feats, labels, TreeOptions{
		MaxDepth:        4,
		MinSamples:      2,
		FeatureSample:   2,
		ThresholdSample: 8,
		Seed:            42,
	})
	require.NotEmpty(t, tree.Nodes)

	var correct int
	for i, feat := range feats {
		pred := 0
		if tree.Evaluate(feat) >= 0.5 {
			pred = 1
		}
		if pred == labels[i] {
			correct++
		}
	}
	assert.True(t, correct >= len(feats)-1, "tree misclassified %d of %d", len(feats)-correct, len(feats))
}

func TestTrainForest(t *testing.T) {
	feats, labels := separableData()
	clf := TrainForest(feats, labels, ForestOptions{
		Trees: 10,
		TreeOptions: TreeOptions{
			MaxDepth:        4,
			MinSamples:      2,
			FeatureSample:   2,
			ThresholdSample: 8,
			Seed:            42,
		},
	})
	assert.True(t, Accuracy(clf, feats, labels) >= 0.9)

	proba := clf.PredictProba(feats[0])
	assert.True(t, proba >= 0 && proba <= 1)
}

func TestEnsembleRoundTrip(t *testing.T) {
	feats, labels := separableData()
	clf := TrainForest(feats, labels, DefaultForestOptions())
	ensemble := clf.Scorer.(*Ensemble)

	var buf bytes.Buffer
	require.NoError(t, SaveEnsemble(&buf, ensemble))

	loaded, err := LoadEnsemble(&buf)
	require.NoError(t, err)
	require.Len(t, loaded.Trees, len(ensemble.Trees))
	assert.Equal(t, ensemble.Evaluate(feats[0]), loaded.Evaluate(feats[0]))
}
