package formstate

import (
	"errors"
	"fmt"
	"slices"
)

// Tree is a record held as decoded JSON: objects are map[string]any and
// lists are []any.
type Tree = map[string]any

// Clone deep-copies a tree.
func Clone(t Tree) Tree {
	if t == nil {
		return nil
	}
	return cloneValue(t).(map[string]any)
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = e
		}
		return out
	default:
		return v
	}
}

// Get reads the node at p.
func Get(t Tree, p Path) (any, bool) {
	var cur any = t
	for _, s := range p {
		if s.IsIndex {
			list, ok := cur.([]any)
			if !ok || s.Index < 0 || s.Index >= len(list) {
				return nil, false
			}
			cur = list[s.Index]
			continue
		}
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[s.Key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// Set returns a copy of t with the node at p replaced by v. Missing
// intermediate objects are created; a missing list element is ErrOutOfRange.
func Set(t Tree, p Path, v any) (Tree, error) {
	return update(t, p, func(any) (any, error) { return cloneValue(v), nil })
}

// Insert returns a copy of t with v appended to the list at p. An absent or
// null list is treated as empty.
func Insert(t Tree, p Path, v any) (Tree, error) {
	return update(t, p, func(cur any) (any, error) {
		list, err := asList(cur, p)
		if err != nil {
			return nil, err
		}
		return append(list, cloneValue(v)), nil
	})
}

// RemoveAt returns a copy of t without element i of the list at p.
func RemoveAt(t Tree, p Path, i int) (Tree, error) {
	return update(t, p, func(cur any) (any, error) {
		list, err := asList(cur, p)
		if err != nil {
			return nil, err
		}
		if i < 0 || i >= len(list) {
			return nil, ErrOutOfRange
		}
		return slices.Delete(list, i, i+1), nil
	})
}

// Replace returns a copy of t with element i of the list at p set to v.
func Replace(t Tree, p Path, i int, v any) (Tree, error) {
	return update(t, p, func(cur any) (any, error) {
		list, err := asList(cur, p)
		if err != nil {
			return nil, err
		}
		if i < 0 || i >= len(list) {
			return nil, ErrOutOfRange
		}
		list[i] = cloneValue(v)
		return list, nil
	})
}

func asList(v any, p Path) ([]any, error) {
	switch x := v.(type) {
	case nil:
		return []any{}, nil
	case []any:
		return x, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotList, p)
	}
}

// update copies t and applies fn to the node at p inside the copy.
func update(t Tree, p Path, fn func(any) (any, error)) (Tree, error) {
	if len(p) == 0 {
		return nil, ErrInvalidPath
	}
	root := Clone(t)
	if root == nil {
		root = Tree{}
	}
	out, err := apply(root, p, fn)
	if err != nil {
		return nil, err
	}
	return out.(map[string]any), nil
}

// apply mutates node in place; node is always part of a fresh copy.
func apply(node any, p Path, fn func(any) (any, error)) (any, error) {
	if len(p) == 0 {
		return fn(node)
	}
	s := p[0]
	if s.IsIndex {
		list, ok := node.([]any)
		if !ok {
			if node == nil {
				return nil, ErrOutOfRange
			}
			return nil, fmt.Errorf("%w: %s", ErrNotList, p)
		}
		if s.Index < 0 || s.Index >= len(list) {
			return nil, ErrOutOfRange
		}
		child, err := apply(list[s.Index], p[1:], fn)
		if err != nil {
			return nil, err
		}
		list[s.Index] = child
		return list, nil
	}
	var m map[string]any
	switch x := node.(type) {
	case nil:
		m = map[string]any{}
	case map[string]any:
		m = x
	default:
		return nil, fmt.Errorf("%w: %q is not an object", ErrInvalidPath, s.Key)
	}
	child, err := apply(m[s.Key], p[1:], fn)
	if err != nil {
		return nil, err
	}
	m[s.Key] = child
	return m, nil
}

// IsOutOfRange reports whether err is a stale-index error.
func IsOutOfRange(err error) bool {
	return errors.Is(err, ErrOutOfRange)
}
