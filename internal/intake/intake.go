package intake

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/intmarks/internal/marks"
)

// MaxSubjects is the largest number of subjects accepted.
const MaxSubjects = 10

var (
	ErrNoSubjects      = errors.New("at least one subject is required")
	ErrTooManySubjects = fmt.Errorf("at most %d subjects are supported", MaxSubjects)
)

// ValidationError reports an input document that does not match Schema.
type ValidationError struct {
	Source string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input %s: %v", e.Source, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Entry is one subject in a batch document. Nil scores are not taken.
type Entry struct {
	Name       string   `json:"name,omitempty"`
	CAT1       *float64 `json:"cat1,omitempty"`
	CAT2       *float64 `json:"cat2,omitempty"`
	CAT3       *float64 `json:"cat3,omitempty"`
	Assignment *float64 `json:"assignment,omitempty"`
}

// Document is a batch input file.
type Document struct {
	Subjects []Entry `json:"subjects"`
}

// CheckCount validates a subject count.
func CheckCount(n int) error {
	switch {
	case n < 1:
		return ErrNoSubjects
	case n > MaxSubjects:
		return ErrTooManySubjects
	}
	return nil
}

// LoadFile reads and validates a batch document from path. "-" reads stdin.
func LoadFile(path string) ([]marks.SubjectInput, error) {
	if path == "-" {
		return Load(os.Stdin, "stdin")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return Load(f, path)
}

// Load reads and validates a batch document. source names the input in
// error messages.
func Load(r io.Reader, source string) ([]marks.SubjectInput, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return decode(raw, source)
}

// FromDocument validates a document built in code, such as one assembled
// from command-line flags.
func FromDocument(doc Document, source string) ([]marks.SubjectInput, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode input: %w", err)
	}
	return decode(raw, source)
}

// WriteDocument writes inputs as a batch document that Load accepts.
func WriteDocument(w io.Writer, inputs []marks.SubjectInput) error {
	doc := Document{Subjects: make([]Entry, 0, len(inputs))}
	for _, in := range inputs {
		doc.Subjects = append(doc.Subjects, EntryFrom(in))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func decode(raw []byte, source string) ([]marks.SubjectInput, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ValidationError{Source: source, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, &ValidationError{Source: source, Err: err}
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &ValidationError{Source: source, Err: err}
	}
	if err := CheckCount(len(doc.Subjects)); err != nil {
		return nil, &ValidationError{Source: source, Err: err}
	}

	inputs := make([]marks.SubjectInput, 0, len(doc.Subjects))
	for _, e := range doc.Subjects {
		inputs = append(inputs, e.Input())
	}
	return inputs, nil
}

// Input converts an entry to an engine input.
func (e Entry) Input() marks.SubjectInput {
	return marks.SubjectInput{
		Name:       strings.TrimSpace(e.Name),
		CAT1:       fromPtr(e.CAT1),
		CAT2:       fromPtr(e.CAT2),
		CAT3:       fromPtr(e.CAT3),
		Assignment: fromPtr(e.Assignment),
	}
}

// EntryFrom converts an engine input back to a document entry.
func EntryFrom(in marks.SubjectInput) Entry {
	return Entry{
		Name:       in.Name,
		CAT1:       toPtr(in.CAT1),
		CAT2:       toPtr(in.CAT2),
		CAT3:       toPtr(in.CAT3),
		Assignment: toPtr(in.Assignment),
	}
}

func fromPtr(v *float64) marks.Score {
	if v == nil {
		return marks.None()
	}
	return marks.Some(*v)
}

func toPtr(s marks.Score) *float64 {
	if !s.Set {
		return nil
	}
	v := s.Value
	return &v
}

// Clamp bounds v to [0, c.RawMax()].
func Clamp(c marks.Component, v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > c.RawMax():
		return c.RawMax()
	}
	return v
}

// ParseScore parses a form field. Blank means not taken; numbers are
// clamped to the component's bounds.
func ParseScore(c marks.Component, s string) (marks.Score, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return marks.None(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return marks.None(), fmt.Errorf("%s: %q is not a number", c.DisplayName(), s)
	}
	return marks.Some(Clamp(c, v)), nil
}

var (
	schemaOnce     sync.Once
	schemaCompiled *jsonschema.Schema
	schemaErr      error
)

// compiledSchema compiles Schema once.
func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		// The compiler wants a decoded JSON value, not Go maps with
		// arbitrary number types.
		defBytes, err := json.Marshal(Schema)
		if err != nil {
			schemaErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		url := fmt.Sprintf("schema://%s.json", SchemaName)
		if err := c.AddResource(url, def); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		schemaCompiled, schemaErr = c.Compile(url)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile schema: %w", schemaErr)
		}
	})
	return schemaCompiled, schemaErr
}

// SchemaJSON returns Schema as indented JSON.
func SchemaJSON() ([]byte, error) {
	return json.MarshalIndent(Schema, "", "  ")
}
