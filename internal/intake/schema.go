package intake

import "github.com/abhisek/intmarks/internal/marks"

// SchemaName identifies the batch input schema.
const SchemaName = "intmarks-subjects"

// scoreProperty describes one optional, bounded raw score.
func scoreProperty(c marks.Component) map[string]any {
	return map[string]any{
		"type":        []any{"number", "null"},
		"minimum":     0,
		"maximum":     c.RawMax(),
		"description": c.DisplayName() + " raw score; omit or null when not taken",
	}
}

// Schema is the JSON schema of a batch input document.
var Schema = map[string]any{
	"title":       "Internal marks input",
	"description": "Raw CAT and assignment scores for 1 to 10 subjects",
	"type":        "object",
	"properties": map[string]any{
		"subjects": map[string]any{
			"type":     "array",
			"minItems": 1,
			"maxItems": MaxSubjects,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{
						"type":        "string",
						"description": "Display name; defaults to \"Subject N\"",
					},
					"cat1":       scoreProperty(marks.CAT1),
					"cat2":       scoreProperty(marks.CAT2),
					"cat3":       scoreProperty(marks.CAT3),
					"assignment": scoreProperty(marks.Assignment),
				},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"subjects"},
	"additionalProperties": false,
}
