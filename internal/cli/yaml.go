package cli

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/okian/winedex/internal/domain/types"
)

// decodeWines reads a YAML (or JSON) document holding either one wine or
// a list of wines.
func decodeWines(r io.Reader) ([]types.Wine, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var wines []types.Wine
		if err := root.Decode(&wines); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return wines, nil
	case yaml.MappingNode:
		var w types.Wine
		if err := root.Decode(&w); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return []types.Wine{w}, nil
	}
	return nil, fmt.Errorf("%w: expected a wine or a list of wines at line %d", ErrDecode, root.Line)
}

// encodeWines writes wines as a YAML list.
func encodeWines(w io.Writer, wines []types.Wine) error {
	if wines == nil {
		wines = []types.Wine{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(wines); err != nil {
		return fmt.Errorf("encode wines: %w", err)
	}
	return enc.Close()
}
