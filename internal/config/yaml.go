package config

import (
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/dotbackup/internal/errors"
)

// maxAliasDepth bounds alias expansion so self-referencing documents terminate.
const maxAliasDepth = 64

// maxYAMLNodes bounds the expanded size of a document. Aliases can repeat a
// subtree many times over, so the source length alone is not a limit.
const maxYAMLNodes = 100_000

// ParseYAML decodes the first document of data into a Value.
// An empty document yields a null Value.
func ParseYAML(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, errors.Config(err, "failed to parse YAML")
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		return Null(), nil
	}
	c := yamlConverter{budget: maxYAMLNodes}
	return c.convert(doc.Content[0], 0)
}

type yamlConverter struct {
	budget int
}

func (c *yamlConverter) convert(n *yaml.Node, depth int) (Value, error) {
	if depth > maxAliasDepth {
		return Value{}, errors.Configf("YAML document nested too deeply")
	}
	c.budget--
	if c.budget < 0 {
		return Value{}, errors.Configf("YAML document expands to more than %d nodes", maxYAMLNodes)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return c.convert(n.Content[0], depth+1)

	case yaml.AliasNode:
		if n.Alias == nil {
			return Null(), nil
		}
		return c.convert(n.Alias, depth+1)

	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := c.convert(item, depth+1)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return Sequence(items...), nil

	case yaml.MappingNode:
		m := &Mapping{Entries: make([]Entry, 0, len(n.Content)/2)}
		keys := make(map[string]bool, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			kn := n.Content[i]
			k, err := c.convert(kn, depth+1)
			if err != nil {
				return Value{}, err
			}
			if k.Kind != KindMapping && k.Kind != KindSequence && kn.ShortTag() != "!!merge" {
				id := k.Kind.String() + ":" + k.Scalar()
				if keys[id] {
					return Value{}, errors.Configf("duplicate YAML key %q at line %d", k.Scalar(), kn.Line)
				}
				keys[id] = true
			}
			v, err := c.convert(n.Content[i+1], depth+1)
			if err != nil {
				return Value{}, err
			}
			m.Entries = append(m.Entries, Entry{Key: k, Value: v})
		}
		return Value{Kind: KindMapping, Map: m}, nil

	case yaml.ScalarNode:
		return fromYAMLScalar(n)

	default:
		return Value{}, errors.Configf("unsupported YAML node at line %d", n.Line)
	}
}

func fromYAMLScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, errors.Config(err, "invalid boolean")
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return Value{}, errors.Config(err, "invalid integer")
		}
		return Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, errors.Config(err, "invalid float")
		}
		return Float(f), nil
	default:
		// !!str, !!timestamp, !!binary and custom tags keep their text.
		return String(n.Value), nil
	}
}
