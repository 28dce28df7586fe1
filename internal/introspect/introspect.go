// Package introspect turns an engine parse tree into a generic, JSON-safe
// tree without knowing the concrete node kinds.
//
// Nodes advertise optional capabilities by implementing small interfaces
// (KeyValuer, ArgsLister, ExpressionHolder, Aliaser, Namer, Tabler,
// Columner). Serialize discovers them with type assertions and applies a
// fixed precedence: key/value first, then args, then a single expression.
// Descriptor capabilities (alias, name, table, column) are attached
// independently of the structural ones.
package introspect

// MaxDepth bounds recursion in Serialize. It sits well above the depth of
// any tree the parser accepts, so only malformed node graphs (a cycle, for
// instance) reach it.
const MaxDepth = 1 << 15

// Node is the minimal contract every engine node satisfies.
type Node interface {
	// Type is a stable, non-empty type tag such as "Select" or "Column".
	Type() string
	// SQL is the node rendered back to source text.
	SQL() string
}

// KeyValuer is implemented by nodes that carry a key/value pair, such as
// an assignment. ok is false when the node has no pair.
type KeyValuer interface {
	KeyValue() (key string, value Node, ok bool)
}

// ArgsLister is implemented by nodes with an ordered list of children.
type ArgsLister interface {
	Args() []Node
}

// ExpressionHolder is implemented by nodes wrapping a single child.
type ExpressionHolder interface {
	Expression() Node
}

// Aliaser exposes an alias (AS name).
type Aliaser interface {
	Alias() string
}

// Namer exposes a name, e.g. a function or table name.
type Namer interface {
	Name() string
}

// Tabler exposes a table qualifier.
type Tabler interface {
	Table() string
}

// Columner exposes a column name.
type Columner interface {
	Column() string
}

// Tree is the canonical serialized form of a node.
type Tree struct {
	Type       string  `json:"type" yaml:"type"`
	SQL        string  `json:"sql" yaml:"sql"`
	Key        string  `json:"key,omitempty" yaml:"key,omitempty"`
	Value      *Tree   `json:"value,omitempty" yaml:"value,omitempty"`
	Args       []*Tree `json:"args,omitempty" yaml:"args,omitempty"`
	Expression *Tree   `json:"expression,omitempty" yaml:"expression,omitempty"`
	Alias      string  `json:"alias,omitempty" yaml:"alias,omitempty"`
	Name       string  `json:"name,omitempty" yaml:"name,omitempty"`
	Table      string  `json:"table,omitempty" yaml:"table,omitempty"`
	Column     string  `json:"column,omitempty" yaml:"column,omitempty"`
}

// Serialize converts n into a Tree. A nil node yields a nil tree and no
// error. The result depends only on the node, so repeated calls on the
// same tree produce equal output.
func Serialize(n Node) (*Tree, error) {
	return serialize(n, "$", 0)
}

func serialize(n Node, path string, depth int) (*Tree, error) {
	if isNil(n) {
		return nil, nil
	}
	if depth > MaxDepth {
		return nil, newError(path, n, "maximum depth %d exceeded", MaxDepth)
	}

	typ := n.Type()
	if typ == "" {
		return nil, newError(path, n, "node has an empty type tag")
	}
	t := &Tree{Type: typ, SQL: n.SQL()}

	if err := serializeStructure(t, n, path, depth); err != nil {
		return nil, err
	}
	attachDescriptors(t, n)
	return t, nil
}

// serializeStructure fills exactly one of key/value, args or expression,
// in that order of precedence.
func serializeStructure(t *Tree, n Node, path string, depth int) error {
	if kv, ok := n.(KeyValuer); ok {
		key, value, has := kv.KeyValue()
		if has {
			if key == "" {
				return newError(path, n, "key/value node has an empty key")
			}
			if isNil(value) {
				return newError(path, n, "key/value node %q has a nil value", key)
			}
			v, err := serialize(value, path+".value", depth+1)
			if err != nil {
				return err
			}
			t.Key, t.Value = key, v
			return nil
		}
	}

	if al, ok := n.(ArgsLister); ok {
		if args := al.Args(); len(args) > 0 {
			t.Args = make([]*Tree, 0, len(args))
			for i, a := range args {
				argPath := path + ".args[" + itoa(i) + "]"
				if isNil(a) {
					return newError(argPath, n, "nil entry in args")
				}
				child, err := serialize(a, argPath, depth+1)
				if err != nil {
					return err
				}
				t.Args = append(t.Args, child)
			}
			return nil
		}
	}

	if eh, ok := n.(ExpressionHolder); ok {
		if expr := eh.Expression(); !isNil(expr) {
			child, err := serialize(expr, path+".expression", depth+1)
			if err != nil {
				return err
			}
			t.Expression = child
		}
	}
	return nil
}

func attachDescriptors(t *Tree, n Node) {
	if a, ok := n.(Aliaser); ok {
		t.Alias = a.Alias()
	}
	if nm, ok := n.(Namer); ok {
		t.Name = nm.Name()
	}
	if tb, ok := n.(Tabler); ok {
		t.Table = tb.Table()
	}
	if c, ok := n.(Columner); ok {
		t.Column = c.Column()
	}
}
