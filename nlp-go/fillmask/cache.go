package fillmask

import (
	"strings"

	lru "github.com/hashicorp/golang-lru"

	"github.com/colorsquare/ml-for-nlp/nlp-golib/errors"
)

// cachedModel memoizes ScoreTargets calls. Bias measurement queries the
// same prior sentence once per attribute, so caching avoids rerunning the
// encoder on it.
type cachedModel struct {
	inner Model
	cache *lru.Cache
}

// NewCached wraps model with an LRU cache of the given size.
func NewCached(model Model, size int) (Model, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrapf(err, "creating fill-mask cache")
	}
	return &cachedModel{inner: model, cache: cache}, nil
}

func (c *cachedModel) ScoreTargets(sentence string, targets []string) ([]Prediction, error) {
	key := sentence + "\x00" + strings.Join(targets, "\x1f")
	if cached, hit := c.cache.Get(key); hit {
		return cached.([]Prediction), nil
	}
	preds, err := c.inner.ScoreTargets(sentence, targets)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, preds)
	return preds, nil
}
