package formstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		in      string
		want    Path
		wantErr bool
	}{
		{in: "title", want: Path{{Key: "title"}}},
		{in: "headquarters.city", want: Path{{Key: "headquarters"}, {Key: "city"}}},
		{in: "workExperience[1].responsibilities", want: Path{
			{Key: "workExperience"}, {Index: 1, IsIndex: true}, {Key: "responsibilities"},
		}},
		{in: "", wantErr: true},
		{in: "a..b", wantErr: true},
		{in: "a[x]", wantErr: true},
		{in: "a[-1]", wantErr: true},
		{in: "a[1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePath(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestLens_CopyOnWrite(t *testing.T) {
	orig := Tree{"skills": []any{"go", "sql"}, "name": "x"}

	set, err := Set(orig, MustParsePath("name"), "y")
	require.NoError(t, err)
	ins, err := Insert(orig, MustParsePath("skills"), "rust")
	require.NoError(t, err)
	rem, err := RemoveAt(orig, MustParsePath("skills"), 0)
	require.NoError(t, err)
	rep, err := Replace(orig, MustParsePath("skills"), 1, "pg")
	require.NoError(t, err)

	assert.Equal(t, Tree{"skills": []any{"go", "sql"}, "name": "x"}, orig)
	assert.Equal(t, "y", set["name"])
	assert.Equal(t, []any{"go", "sql", "rust"}, ins["skills"])
	assert.Equal(t, []any{"sql"}, rem["skills"])
	assert.Equal(t, []any{"go", "pg"}, rep["skills"])
}

func TestLens_InsertInitialisesMissingList(t *testing.T) {
	out, err := Insert(Tree{}, MustParsePath("tags"), "news")
	require.NoError(t, err)
	assert.Equal(t, []any{"news"}, out["tags"])
}

func TestLens_OutOfRange(t *testing.T) {
	orig := Tree{"skills": []any{"go"}}

	_, err := RemoveAt(orig, MustParsePath("skills"), 1)
	assert.True(t, IsOutOfRange(err))
	_, err = Set(orig, MustParsePath("skills[4]"), "x")
	assert.True(t, IsOutOfRange(err))
}

func TestGet(t *testing.T) {
	tree := Tree{"a": []any{map[string]any{"b": "c"}}}

	v, ok := Get(tree, MustParsePath("a[0].b"))
	assert.True(t, ok)
	assert.Equal(t, "c", v)

	_, ok = Get(tree, MustParsePath("a[1].b"))
	assert.False(t, ok)
}

func TestShape_NewEntry(t *testing.T) {
	entry, err := ResumeShape.NewEntry("education")
	require.NoError(t, err)
	assert.Equal(t, []any{}, entry["academicAchievements"])

	_, err = ResumeShape.NewEntry("skills")
	assert.ErrorIs(t, err, ErrNotList)
	_, err = ResumeShape.NewEntry("nope")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestShape_EmptyDefaults(t *testing.T) {
	job := JobPostingShape.Empty()
	assert.Equal(t, []any{""}, job["skills"])
	assert.Equal(t, 1.0, job["requireEmployee"])
	assert.Equal(t, "Full-Time", job["jobType"])

	// defaults must not be shared between records
	job["skills"].([]any)[0] = "go"
	assert.Equal(t, []any{""}, JobPostingShape.Empty()["skills"])
}
