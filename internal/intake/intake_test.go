package intake

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/intmarks/internal/marks"
)

func TestLoad_Valid(t *testing.T) {
	doc := `{"subjects": [
		{"name": " Maths ", "cat1": 40, "cat2": null, "assignment": 5},
		{"cat1": 50, "cat2": 25, "cat3": 50, "assignment": 10}
	]}`

	inputs, err := Load(strings.NewReader(doc), "test")
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	assert.Equal(t, "Maths", inputs[0].Name)
	assert.Equal(t, marks.Some(40), inputs[0].CAT1)
	assert.Equal(t, marks.None(), inputs[0].CAT2)
	assert.Equal(t, marks.None(), inputs[0].CAT3)
	assert.Equal(t, marks.Some(5), inputs[0].Assignment)

	assert.Empty(t, inputs[1].Name)
	assert.Equal(t, marks.Some(50), inputs[1].CAT3)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{"subjects": [`},
		{"missing subjects", `{}`},
		{"empty subjects", `{"subjects": []}`},
		{"cat2 above max", `{"subjects": [{"cat2": 26}]}`},
		{"negative assignment", `{"subjects": [{"assignment": -1}]}`},
		{"score as string", `{"subjects": [{"cat1": "40"}]}`},
		{"unknown field", `{"subjects": [{"cat4": 1}]}`},
		{"too many subjects", `{"subjects": [{},{},{},{},{},{},{},{},{},{},{}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc), "test")
			require.Error(t, err)
			var verr *ValidationError
			assert.True(t, errors.As(err, &verr), "want *ValidationError, got %T", err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subjects.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"subjects": [{"cat1": 10}]}`), 0o600))

	inputs, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, marks.Some(10), inputs[0].CAT1)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestEntryRoundTrip(t *testing.T) {
	in := marks.SubjectInput{Name: "Bio", CAT1: marks.Some(12.5), CAT3: marks.Some(0)}
	assert.Equal(t, in, EntryFrom(in).Input())
}

func TestCheckCount(t *testing.T) {
	assert.ErrorIs(t, CheckCount(0), ErrNoSubjects)
	assert.ErrorIs(t, CheckCount(11), ErrTooManySubjects)
	assert.NoError(t, CheckCount(1))
	assert.NoError(t, CheckCount(10))
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		c       marks.Component
		in      string
		want    marks.Score
		wantErr bool
	}{
		{marks.CAT1, "", marks.None(), false},
		{marks.CAT1, "  ", marks.None(), false},
		{marks.CAT1, "42.5", marks.Some(42.5), false},
		{marks.CAT1, "0", marks.Some(0), false},
		{marks.CAT2, "30", marks.Some(25), false},
		{marks.Assignment, "-3", marks.Some(0), false},
		{marks.CAT3, "abc", marks.None(), true},
		{marks.CAT3, "NaN", marks.None(), true},
	}
	for _, tt := range tests {
		got, err := ParseScore(tt.c, tt.in)
		if tt.wantErr {
			assert.Error(t, err, "%s %q", tt.c, tt.in)
			continue
		}
		require.NoError(t, err, "%s %q", tt.c, tt.in)
		assert.Equal(t, tt.want, got, "%s %q", tt.c, tt.in)
	}
}

func TestSchemaJSON(t *testing.T) {
	data, err := SchemaJSON()
	require.NoError(t, err)
	var v map[string]any
	require.NoError(t, json.Unmarshal(data, &v))
	assert.Equal(t, "object", v["type"])
}

func TestFromDocument(t *testing.T) {
	cat1, cat2 := 40.0, 30.0

	inputs, err := FromDocument(Document{Subjects: []Entry{{Name: "Maths", CAT1: &cat1}}}, "flags")
	require.NoError(t, err)
	assert.Equal(t, []marks.SubjectInput{{Name: "Maths", CAT1: marks.Some(40)}}, inputs)

	_, err = FromDocument(Document{Subjects: []Entry{{CAT2: &cat2}}}, "flags")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "flags", verr.Source)
}

func TestWriteDocument_LoadsBack(t *testing.T) {
	in := []marks.SubjectInput{
		{Name: "Maths", CAT1: marks.Some(40), CAT2: marks.Some(0)},
		{CAT3: marks.Some(12.5), Assignment: marks.Some(10)},
	}

	var buf strings.Builder
	require.NoError(t, WriteDocument(&buf, in))
	assert.NotContains(t, buf.String(), `"cat3": null`)

	got, err := Load(strings.NewReader(buf.String()), "buffer")
	require.NoError(t, err)
	assert.Equal(t, in, got)
}
