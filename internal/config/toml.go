package config

import (
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2/unstable"

	"github.com/thoreinstein/dotbackup/internal/errors"
)

// ParseTOML decodes a TOML document into a Value. Tables and keys keep their
// document order. A document without any expression yields a null Value.
func ParseTOML(data []byte) (Value, error) {
	b := tomlBuilder{root: &Mapping{}}
	b.current = b.root

	p := unstable.Parser{}
	p.Reset(data)

	for p.NextExpression() {
		if err := b.expression(p.Expression()); err != nil {
			return Value{}, err
		}
	}
	if err := p.Error(); err != nil {
		return Value{}, errors.Config(err, "failed to parse TOML")
	}

	if !b.seen {
		return Null(), nil
	}
	return Value{Kind: KindMapping, Map: b.root}, nil
}

type tomlBuilder struct {
	root    *Mapping
	current *Mapping
	seen    bool

	// defined holds tables named by a header or by a dotted key; naming
	// one again with a header is an error.
	defined map[*Mapping]bool
	// sealed holds inline tables, which nothing may extend.
	sealed map[*Mapping]bool
}

func (b *tomlBuilder) expression(n *unstable.Node) error {
	switch n.Kind {
	case unstable.Comment:
		return nil
	case unstable.Table:
		b.seen = true
		parts := keyParts(n.Key())
		m, err := b.descend(b.root, parts)
		if err != nil {
			return err
		}
		if b.defined[m] {
			return errors.Configf("duplicate TOML table %q", strings.Join(parts, "."))
		}
		b.define(m)
		b.current = m
		return nil
	case unstable.ArrayTable:
		b.seen = true
		m, err := b.appendTable(keyParts(n.Key()))
		if err != nil {
			return err
		}
		b.current = m
		return nil
	case unstable.KeyValue:
		b.seen = true
		return b.setKeyValue(b.current, n)
	default:
		return errors.Configf("unexpected TOML expression %s", n.Kind)
	}
}

func (b *tomlBuilder) define(m *Mapping) {
	if b.defined == nil {
		b.defined = map[*Mapping]bool{}
	}
	b.defined[m] = true
}

func (b *tomlBuilder) seal(m *Mapping) {
	if b.sealed == nil {
		b.sealed = map[*Mapping]bool{}
	}
	b.sealed[m] = true
}

func keyParts(it unstable.Iterator) []string {
	var parts []string
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}

// descend walks parts from m, creating tables as needed. An array of tables
// resolves to its last element.
func (b *tomlBuilder) descend(m *Mapping, parts []string) (*Mapping, error) {
	for _, part := range parts {
		v := m.lookup(part)
		switch {
		case v == nil:
			child := &Mapping{}
			m.Set(part, Value{Kind: KindMapping, Map: child})
			m = child
		case v.Kind == KindMapping && !b.sealed[v.Map]:
			m = v.Map
		case v.Kind == KindSequence && len(v.Seq) > 0 && v.Seq[len(v.Seq)-1].Kind == KindMapping && !b.sealed[v.Seq[len(v.Seq)-1].Map]:
			m = v.Seq[len(v.Seq)-1].Map
		default:
			return nil, errors.Configf("TOML key %q is not a table", part)
		}
	}
	return m, nil
}

func (b *tomlBuilder) appendTable(parts []string) (*Mapping, error) {
	if len(parts) == 0 {
		return nil, errors.Configf("empty TOML array table name")
	}
	parent, err := b.descend(b.root, parts[:len(parts)-1])
	if err != nil {
		return nil, err
	}

	last := parts[len(parts)-1]
	v := parent.lookup(last)
	if v == nil {
		v = parent.Set(last, Sequence())
	}
	if v.Kind != KindSequence {
		return nil, errors.Configf("TOML key %q is not an array of tables", last)
	}

	child := &Mapping{}
	v.Seq = append(v.Seq, Value{Kind: KindMapping, Map: child})
	return child, nil
}

func (b *tomlBuilder) setKeyValue(m *Mapping, n *unstable.Node) error {
	parts := keyParts(n.Key())
	if len(parts) == 0 {
		return errors.Configf("empty TOML key")
	}

	parent := m
	for _, part := range parts[:len(parts)-1] {
		next, err := b.descend(parent, []string{part})
		if err != nil {
			return err
		}
		b.define(next)
		parent = next
	}

	last := parts[len(parts)-1]
	if parent.lookup(last) != nil {
		return errors.Configf("duplicate TOML key %q", strings.Join(parts, "."))
	}

	v, err := b.value(n.Value())
	if err != nil {
		return err
	}
	parent.Set(last, v)
	return nil
}

func (b *tomlBuilder) value(n *unstable.Node) (Value, error) {
	switch n.Kind {
	case unstable.String:
		return String(string(n.Data)), nil

	case unstable.Bool:
		return Bool(string(n.Data) == "true"), nil

	case unstable.Integer:
		i, err := strconv.ParseInt(string(n.Data), 0, 64)
		if err != nil {
			return Value{}, errors.Config(err, "invalid TOML integer")
		}
		return Int(i), nil

	case unstable.Float:
		f, err := strconv.ParseFloat(strings.ReplaceAll(string(n.Data), "_", ""), 64)
		if err != nil {
			return Value{}, errors.Config(err, "invalid TOML float")
		}
		return Float(f), nil

	case unstable.LocalDate, unstable.LocalTime, unstable.LocalDateTime, unstable.DateTime:
		return String(string(n.Data)), nil

	case unstable.Array:
		items := []Value{}
		it := n.Children()
		for it.Next() {
			v, err := b.value(it.Node())
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return Sequence(items...), nil

	case unstable.InlineTable:
		m := &Mapping{}
		it := n.Children()
		for it.Next() {
			if err := b.setKeyValue(m, it.Node()); err != nil {
				return Value{}, err
			}
		}
		b.seal(m)
		return Value{Kind: KindMapping, Map: m}, nil

	default:
		return Value{}, errors.Configf("unsupported TOML value %s", n.Kind)
	}
}
