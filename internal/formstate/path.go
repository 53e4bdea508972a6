// Package formstate is the working-copy editor behind every data-entry page.
//
// A record is held as a Tree (decoded JSON) and edited through a small set of
// path-addressed operations. Every operation copies the tree before writing,
// so a snapshot handed out earlier never changes under its holder.
package formstate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidPath  = errors.New("formstate: invalid path")
	ErrUnknownField = errors.New("formstate: unknown field")
	ErrNotScalar    = errors.New("formstate: field is not a scalar")
	ErrNotList      = errors.New("formstate: field is not a list")
	ErrOutOfRange   = errors.New("formstate: index out of range")
)

// Segment is one step of a Path: either a map key or a list index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

func (s Segment) String() string {
	if s.IsIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return s.Key
}

// Path addresses a node inside a Tree.
type Path []Segment

// String renders the path back to its textual form.
func (p Path) String() string {
	var b strings.Builder
	for i, s := range p {
		if !s.IsIndex && i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// Index returns a copy of p extended with a list index.
func (p Path) Index(i int) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, Segment{Index: i, IsIndex: true})
}

// Key returns a copy of p extended with a map key.
func (p Path) Key(k string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, Segment{Key: k})
}

// ParsePath parses paths such as "workExperience[1].responsibilities".
func ParsePath(s string) (Path, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	var p Path
	for _, tok := range strings.Split(s, ".") {
		key, rest, _ := strings.Cut(tok, "[")
		if key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, s)
		}
		p = append(p, Segment{Key: key})
		if rest == "" {
			if strings.Contains(tok, "[") {
				return nil, fmt.Errorf("%w: %q", ErrInvalidPath, s)
			}
			continue
		}
		// rest is "N]" or "N][M]"...
		for _, idx := range strings.Split(strings.TrimSuffix(rest, "]"), "][") {
			n, err := strconv.Atoi(idx)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: bad index in %q", ErrInvalidPath, s)
			}
			p = append(p, Segment{Index: n, IsIndex: true})
		}
		if !strings.HasSuffix(rest, "]") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, s)
		}
	}
	return p, nil
}

// MustParsePath is ParsePath for literals known to be valid.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}
