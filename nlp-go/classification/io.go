package classification

import (
	"encoding/json"
	"io"
)

// LoadEnsemble reads a JSON-serialized tree ensemble.
func LoadEnsemble(r io.Reader) (*Ensemble, error) {
	var ensemble Ensemble
	if err := json.NewDecoder(r).Decode(&ensemble); err != nil {
		return nil, err
	}
	return &ensemble, nil
}

// SaveEnsemble writes a JSON-serialized tree ensemble.
func SaveEnsemble(w io.Writer, e *Ensemble) error {
	return json.NewEncoder(w).Encode(e)
}
