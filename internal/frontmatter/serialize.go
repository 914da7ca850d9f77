package frontmatter

import (
	"bytes"
	"sort"

	"gopkg.in/yaml.v3"
)

// SerializeYAML serializes metadata into YAML bytes (without delimiters).
//
// Determinism: keys are sorted to keep output stable, which makes the result
// usable as fingerprint input. Numbers keep their source spelling.
//
// If meta is empty, SerializeYAML returns an empty slice.
func SerializeYAML(meta Metadata) ([]byte, error) {
	if len(meta) == 0 {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(mappingNode(meta)); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func mappingNode(meta Metadata) *yaml.Node {
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		n.Content = append(n.Content, keyNode, valueNode(meta[k]))
	}
	return n
}

func valueNode(v Value) *yaml.Node {
	switch v.kind {
	case KindNumber:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: v.str}
	case KindSequence:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, item := range v.seq {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: item})
		}
		return seq
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.str}
	}
}

// ToMap converts metadata into plain Go values, suitable for JSON encoding.
func (m Metadata) ToMap() map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch v.kind {
		case KindNumber:
			out[k] = v.num
		case KindSequence:
			out[k] = v.Strings()
		default:
			out[k] = v.str
		}
	}
	return out
}
