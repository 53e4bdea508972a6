package formstate

import "fmt"

// Kind classifies a field of a Shape, or the node a path resolves to.
type Kind int

const (
	// Scalar is a string, number or boolean leaf. List items resolve to Scalar.
	Scalar Kind = iota
	// List is a flat list of scalars.
	List
	// Group is a fixed object such as headquarters or socialMedia.
	Group
	// EntryList is a list of objects described by the field's Entry shape.
	EntryList
	// Entry is one element of an EntryList.
	Entry
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case List:
		return "list"
	case Group:
		return "group"
	case EntryList:
		return "entry list"
	case Entry:
		return "entry"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Field describes one field of a record.
type Field struct {
	Name    string
	Kind    Kind
	Default any
	// Entry is the shape of a Group or of each element of an EntryList.
	Entry *Shape
}

// Shape is the declared structure of a record kind.
type Shape struct {
	Name   string
	Fields []Field
}

func (s *Shape) field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Empty returns the default tree for the shape.
func (s *Shape) Empty() Tree {
	t := make(Tree, len(s.Fields))
	for _, f := range s.Fields {
		t[f.Name] = f.zero()
	}
	return t
}

func (f Field) zero() any {
	switch f.Kind {
	case Group:
		return f.Entry.Empty()
	case List, EntryList:
		if f.Default != nil {
			return cloneValue(f.Default)
		}
		return []any{}
	default:
		if f.Default != nil {
			return f.Default
		}
		return ""
	}
}

// Complete returns a copy of t in which every declared field is present.
// Null lists become empty, groups and entries are completed recursively.
// Undeclared keys such as "_id" are kept.
func (s *Shape) Complete(t Tree) Tree {
	out := Clone(t)
	if out == nil {
		out = Tree{}
	}
	for _, f := range s.Fields {
		v, ok := out[f.Name]
		if !ok || v == nil {
			out[f.Name] = f.zero()
			continue
		}
		switch f.Kind {
		case Scalar:
			if _, numeric := f.Default.(float64); numeric {
				if n, err := coerce(f, v); err == nil {
					out[f.Name] = n
				} else {
					out[f.Name] = f.Default
				}
			}
		case Group:
			if m, ok := v.(map[string]any); ok {
				out[f.Name] = f.Entry.Complete(m)
			} else {
				out[f.Name] = f.zero()
			}
		case List:
			if _, ok := v.([]any); !ok {
				out[f.Name] = []any{}
			}
		case EntryList:
			list, ok := v.([]any)
			if !ok {
				out[f.Name] = []any{}
				continue
			}
			for i, e := range list {
				m, _ := e.(map[string]any)
				list[i] = f.Entry.Complete(m)
			}
		}
	}
	return out
}

// Resolve walks p against the shape. It reports the kind of the addressed
// node and the declared field it belongs to: for a list item that is the
// list field, for an object list entry the object list field.
func (s *Shape) Resolve(p Path) (Kind, Field, error) {
	if len(p) == 0 {
		return 0, Field{}, ErrInvalidPath
	}
	cur := s
	var f Field
	for i := 0; i < len(p); i++ {
		seg := p[i]
		if seg.IsIndex {
			return 0, Field{}, fmt.Errorf("%w: unexpected index in %s", ErrInvalidPath, p)
		}
		var ok bool
		if f, ok = cur.field(seg.Key); !ok {
			return 0, Field{}, fmt.Errorf("%w: %s", ErrUnknownField, p[:i+1])
		}
		last := i == len(p)-1
		switch f.Kind {
		case Scalar:
			if !last {
				return 0, Field{}, fmt.Errorf("%w: %s", ErrInvalidPath, p)
			}
		case List:
			if !last {
				if !p[i+1].IsIndex || i+2 != len(p) {
					return 0, Field{}, fmt.Errorf("%w: %s", ErrInvalidPath, p)
				}
				return Scalar, f, nil
			}
		case Group:
			cur = f.Entry
		case EntryList:
			if !last {
				if !p[i+1].IsIndex {
					return 0, Field{}, fmt.Errorf("%w: %s", ErrInvalidPath, p)
				}
				i++
				if i == len(p)-1 {
					return Entry, f, nil
				}
				cur = f.Entry
			}
		}
	}
	return f.Kind, f, nil
}

// NewEntry returns a default element for the object list field named list,
// with every nested list present and empty.
func (s *Shape) NewEntry(list string) (Tree, error) {
	f, ok := s.field(list)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, list)
	}
	if f.Kind != EntryList {
		return nil, fmt.Errorf("%w: %s is a %s", ErrNotList, list, f.Kind)
	}
	return newEntry(f.Entry, nil), nil
}

// newEntry overlays the declared keys of seed on the entry defaults.
func newEntry(entry *Shape, seed map[string]any) Tree {
	t := entry.Empty()
	for k, v := range seed {
		if _, ok := entry.field(k); ok {
			t[k] = cloneValue(v)
		}
	}
	return entry.Complete(t)
}
