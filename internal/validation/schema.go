package validation

import (
	"embed"
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// Record kinds with an embedded schema.
const (
	KindResume  = "resume"
	KindJob     = "job"
	KindCompany = "company"
	KindBlog    = "blog"
)

type schemaSet struct {
	byKind map[string]*gojsonschema.Schema
}

// SchemaLoadError reports an embedded schema that failed to compile.
type SchemaLoadError struct {
	Kind  string
	Cause error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("load schema %s: %v", e.Kind, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error { return e.Cause }

func loadSchemas() (*schemaSet, error) {
	set := &schemaSet{byKind: map[string]*gojsonschema.Schema{}}
	for _, kind := range []string{KindResume, KindJob, KindCompany, KindBlog} {
		raw, err := schemaFS.ReadFile("schemas/" + kind + ".schema.json")
		if err != nil {
			return nil, &SchemaLoadError{Kind: kind, Cause: err}
		}
		s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			return nil, &SchemaLoadError{Kind: kind, Cause: err}
		}
		set.byKind[kind] = s
	}
	return set, nil
}

// Shape checks an edited tree against the schema of its record kind before
// it is decoded into a typed record.
func (v *Validator) Shape(kind string, tree any) error {
	s, ok := v.schemas.byKind[kind]
	if !ok {
		return fmt.Errorf("no schema for record kind %q", kind)
	}
	result, err := s.Validate(gojsonschema.NewGoLoader(tree))
	if err != nil {
		return fmt.Errorf("validate %s shape: %w", kind, err)
	}
	if result.Valid() {
		return nil
	}

	errs := result.Errors()
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Field() < errs[j].Field() })
	var c collector
	for _, desc := range errs {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		c.add(field, fmt.Sprintf("%s: %s", field, desc.Description()))
	}
	return c.err()
}
