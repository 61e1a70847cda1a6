package rossum

import (
	"encoding/json"
	"fmt"
)

// Status is the lifecycle state of a server-side extraction job.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusError      Status = "error"
)

// Terminal reports whether the job will not change state anymore.
func (s Status) Terminal() bool {
	return s == StatusReady || s == StatusError
}

// Filter selects which confidence tier of fields the service returns.
type Filter string

const (
	// FilterBest retrieves only the high quality subset of extracted fields.
	FilterBest Filter = "best"
	// FilterAll returns the complete set of extracted fields, even low
	// quality ones. The caller has to post-process them appropriately.
	FilterAll Filter = "all"
)

func (f Filter) valid() bool { return f == FilterBest || f == FilterAll }

// ExtractionResult is the decoded terminal payload of a ready job.
type ExtractionResult struct {
	Status   Status  `json:"status"`
	Language string  `json:"language"`
	Currency string  `json:"currency"`
	Fields   []Field `json:"fields"`
	Tables   []Table `json:"tables,omitempty"`

	// Preview is the web preview URL for the job, filled in by the client.
	Preview string `json:"-"`
}

// Field is a tagged variant: either a leaf carrying Value and Score, or a
// composite carrying Content (a named group of nested leaf fields, e.g. tax
// detail line items). The variant is resolved once at parse time.
type Field struct {
	Name  string
	Title string

	// Leaf variant.
	Value string
	Score float64

	// Composite variant. Non-nil marks the field as composite.
	Content []Field
}

// Composite reports whether the field is a nested group rather than a leaf.
func (f Field) Composite() bool { return f.Content != nil }

// NewLeafField builds a leaf field.
func NewLeafField(name, title, value string, score float64) Field {
	return Field{Name: name, Title: title, Value: value, Score: score}
}

// NewCompositeField builds a composite field holding nested fields.
func NewCompositeField(name, title string, content ...Field) Field {
	if content == nil {
		content = []Field{}
	}
	return Field{Name: name, Title: title, Content: content}
}

type rawField struct {
	Name    string   `json:"name"`
	Title   string   `json:"title"`
	Value   *string  `json:"value,omitempty"`
	Score   *float64 `json:"score,omitempty"`
	Content []Field  `json:"content,omitempty"`
}

// UnmarshalJSON resolves the leaf/composite variant from the wire shape: the
// presence of "content" marks a composite, otherwise "value" and "score" are
// expected.
func (f *Field) UnmarshalJSON(data []byte) error {
	var raw rawField
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.Name = raw.Name
	f.Title = raw.Title
	if raw.Content != nil {
		f.Value = ""
		f.Score = 0
		f.Content = raw.Content
		return nil
	}
	if raw.Value == nil {
		return fmt.Errorf("field %q: neither value nor content present", raw.Name)
	}
	f.Value = *raw.Value
	if raw.Score != nil {
		f.Score = *raw.Score
	}
	f.Content = nil
	return nil
}

// MarshalJSON writes the variant back in the wire shape.
func (f Field) MarshalJSON() ([]byte, error) {
	if f.Composite() {
		return json.Marshal(rawField{Name: f.Name, Title: f.Title, Content: f.Content})
	}
	value, score := f.Value, f.Score
	return json.Marshal(rawField{Name: f.Name, Title: f.Title, Value: &value, Score: &score})
}

// Table is a grid of cells extracted from one document page.
type Table struct {
	Page int   `json:"page"`
	Rows []Row `json:"rows"`
}

// Row is a single table row; Type distinguishes header rows from data rows.
type Row struct {
	Type  string `json:"type"`
	Cells []Cell `json:"cells"`
}

const (
	RowTypeHeader = "header"
	RowTypeData   = "data"
)

// Cell holds the optional textual content of one table cell.
type Cell struct {
	Content *string `json:"content,omitempty"`
}

// Text returns the cell content, or the empty string for blank cells.
func (c Cell) Text() string {
	if c.Content == nil {
		return ""
	}
	return *c.Content
}
