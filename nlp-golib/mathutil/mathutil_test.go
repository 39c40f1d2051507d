package mathutil

import (
	"math"
	"testing"
)

func TestSum(t *testing.T) {
	entries := []float64{1.7, 8.9 - 0.2}
	act := Sum(entries)
	exp := 10.4
	if math.Abs(act-exp) > 1e-8 {
		t.Errorf("expected %f, got %f", exp, act)
	}
}

func TestLogSumExp(t *testing.T) {
	logs := []float64{math.Log(1), math.Log(2), math.Log(3)}
	act := LogSumExp(logs)
	exp := math.Log(6)
	if math.Abs(act-exp) > 1e-8 {
		t.Errorf("expected %f, got %f", exp, act)
	}
}

func TestSoftmax(t *testing.T) {
	probs := Softmax([]float64{1, 1, 1, 1})
	for _, p := range probs {
		if math.Abs(p-0.25) > 1e-8 {
			t.Errorf("expected uniform 0.25, got %v", probs)
		}
	}
	if Argmax(Softmax([]float64{0.1, 3.5, -2})) != 1 {
		t.Error("softmax should preserve the argmax")
	}
}

func TestArgmax(t *testing.T) {
	if act := Argmax([]float64{0.3, -1, 7.2, 7.1}); act != 2 {
		t.Errorf("expected 2, got %d", act)
	}
	if act := Argmax(nil); act != -1 {
		t.Errorf("expected -1 for empty slice, got %d", act)
	}
}

func TestTopKIndices(t *testing.T) {
	values := []float64{0.5, 3, 1, 2}
	act := TopKIndices(values, 2)
	if len(act) != 2 || act[0] != 1 || act[1] != 3 {
		t.Errorf("expected [1 3], got %v", act)
	}
	if got := TopKIndices(values, 10); len(got) != 4 {
		t.Errorf("expected all indices, got %v", got)
	}
}
