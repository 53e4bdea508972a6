package formstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Op is one edit as posted by a page.
type Op struct {
	Op    string `json:"op"              validate:"required,oneof=set add update remove"`
	Path  string `json:"path"            validate:"required"`
	Index *int   `json:"index,omitempty"`
	Entry *int   `json:"entry,omitempty"`
	Field string `json:"field,omitempty"`
	Value any    `json:"value,omitempty"`
}

// ErrMissingIndex is returned for update and remove ops without an index.
var ErrMissingIndex = errors.New("formstate: op requires an index")

// Editor holds the working copy of one record. It is not safe for
// concurrent use; callers serialise edits per draft.
type Editor struct {
	shape *Shape
	tree  Tree
}

// NewEditor starts an editor on the shape's defaults.
func NewEditor(shape *Shape) *Editor {
	return &Editor{shape: shape, tree: shape.Empty()}
}

// Restore resumes an editor from a stored working copy.
func Restore(shape *Shape, t Tree) *Editor {
	return &Editor{shape: shape, tree: shape.Complete(t)}
}

// Shape returns the record shape being edited.
func (e *Editor) Shape() *Shape { return e.shape }

// Snapshot returns an independent copy of the working copy.
func (e *Editor) Snapshot() Tree { return Clone(e.tree) }

// Hydrate replaces the working copy with a fetched record. Any value that
// marshals to a JSON object is accepted.
func (e *Editor) Hydrate(record any) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("hydrate %s: %w", e.shape.Name, err)
	}
	var t Tree
	if err := json.Unmarshal(raw, &t); err != nil {
		return fmt.Errorf("hydrate %s: %w", e.shape.Name, err)
	}
	e.tree = e.shape.Complete(t)
	return nil
}

// Decode converts the working copy into a typed record.
func (e *Editor) Decode(out any) error {
	raw, err := json.Marshal(e.tree)
	if err != nil {
		return fmt.Errorf("decode %s: %w", e.shape.Name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", e.shape.Name, err)
	}
	return nil
}

// Len returns the length of the list at path, or 0.
func (e *Editor) Len(path string) int {
	p, err := ParsePath(path)
	if err != nil {
		return 0
	}
	v, _ := Get(e.tree, p)
	list, _ := v.([]any)
	return len(list)
}

// SetScalar sets a scalar field. A path through a stale list index is a no-op.
func (e *Editor) SetScalar(path string, v any) error {
	p, kind, f, err := e.resolve(path)
	if err != nil {
		return err
	}
	if kind != Scalar {
		return fmt.Errorf("%w: %s is a %s", ErrNotScalar, path, kind)
	}
	if !isScalar(v) {
		return fmt.Errorf("%w: value for %s", ErrNotScalar, path)
	}
	if f.Kind == Scalar {
		if v, err = coerce(f, v); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrNotScalar, path, err)
		}
	}
	return e.commit(Set(e.tree, p, v))
}

// AddListItem appends to a flat list or an object list. For object lists
// value may be a partial entry; missing fields take their defaults.
func (e *Editor) AddListItem(path string, value any) error {
	p, kind, f, err := e.resolve(path)
	if err != nil {
		return err
	}
	item, err := e.item(path, kind, f.Entry, value)
	if err != nil {
		return err
	}
	return e.commit(Insert(e.tree, p, item))
}

// UpdateListItem replaces element i of a list.
func (e *Editor) UpdateListItem(path string, i int, value any) error {
	p, kind, f, err := e.resolve(path)
	if err != nil {
		return err
	}
	item, err := e.item(path, kind, f.Entry, value)
	if err != nil {
		return err
	}
	return e.commit(Replace(e.tree, p, i, item))
}

// RemoveListItem deletes element i of a list.
func (e *Editor) RemoveListItem(path string, i int) error {
	p, kind, _, err := e.resolve(path)
	if err != nil {
		return err
	}
	if kind != List && kind != EntryList {
		return fmt.Errorf("%w: %s", ErrNotList, path)
	}
	return e.commit(RemoveAt(e.tree, p, i))
}

// AddNestedListItem appends to a list inside entry n of an object list, for
// example the responsibilities of one work experience.
func (e *Editor) AddNestedListItem(list string, n int, field string, value any) error {
	return e.AddListItem(nested(list, n, field), value)
}

// UpdateNestedListItem replaces element i of a nested list.
func (e *Editor) UpdateNestedListItem(list string, n int, field string, i int, value any) error {
	return e.UpdateListItem(nested(list, n, field), i, value)
}

// RemoveNestedListItem deletes element i of a nested list.
func (e *Editor) RemoveNestedListItem(list string, n int, field string, i int) error {
	return e.RemoveListItem(nested(list, n, field), i)
}

// Apply dispatches a posted op.
func (e *Editor) Apply(op Op) error {
	path := op.Path
	switch {
	case op.Entry != nil && op.Field != "":
		path = nested(op.Path, *op.Entry, op.Field)
	case op.Entry != nil || op.Field != "":
		return fmt.Errorf("%w: entry and field go together", ErrInvalidPath)
	}
	switch op.Op {
	case "set":
		return e.SetScalar(path, op.Value)
	case "add":
		return e.AddListItem(path, op.Value)
	case "update":
		if op.Index == nil {
			return ErrMissingIndex
		}
		return e.UpdateListItem(path, *op.Index, op.Value)
	case "remove":
		if op.Index == nil {
			return ErrMissingIndex
		}
		return e.RemoveListItem(path, *op.Index)
	}
	return fmt.Errorf("%w: unknown op %q", ErrInvalidPath, op.Op)
}

func nested(list string, n int, field string) string {
	return fmt.Sprintf("%s[%d].%s", list, n, field)
}

func (e *Editor) resolve(path string) (Path, Kind, Field, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, 0, Field{}, err
	}
	kind, f, err := e.shape.Resolve(p)
	if err != nil {
		return nil, 0, Field{}, err
	}
	return p, kind, f, nil
}

// item builds a list element for the list kind at path.
func (e *Editor) item(path string, kind Kind, entry *Shape, value any) (any, error) {
	switch kind {
	case List:
		if value == nil {
			return "", nil
		}
		if !isScalar(value) {
			return nil, fmt.Errorf("%w: item for %s", ErrNotScalar, path)
		}
		return value, nil
	case EntryList:
		var seed map[string]any
		if value != nil {
			m, ok := cloneValue(value).(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: entry for %s must be an object", ErrInvalidPath, path)
			}
			seed = m
		}
		return newEntry(entry, seed), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotList, path)
}

// commit installs the result of a lens call. Stale indices leave the
// working copy untouched.
func (e *Editor) commit(t Tree, err error) error {
	if err != nil {
		if IsOutOfRange(err) {
			return nil
		}
		return err
	}
	e.tree = t
	return nil
}

// coerce converts form text into the number a numeric field holds.
func coerce(f Field, v any) (any, error) {
	if _, numeric := f.Default.(float64); !numeric {
		if v == nil {
			return "", nil
		}
		return v, nil
	}
	switch x := v.(type) {
	case nil:
		return f.Default, nil
	case string:
		if strings.TrimSpace(x) == "" {
			return f.Default, nil
		}
		return strconv.ParseFloat(strings.TrimSpace(x), 64)
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case float32:
		return float64(x), nil
	case json.Number:
		return x.Float64()
	case bool:
		return nil, errors.New("want a number")
	}
	return v, nil
}

func isScalar(v any) bool {
	switch v.(type) {
	case nil, string, bool, float64, float32, int, int64, int32, json.Number:
		return true
	}
	return false
}
