package rossum

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tyler-sommer/stick"
)

// Summary templates, overridable via WithSummaryTemplates or WithSummaryFS.
const (
	defaultHeaderTemplate = "Language: {{ language }}\nCurrency: {{ currency }}\n"
	defaultFieldTemplate  = `{{ title }}: "{{ value }}" ({{ percent }} %)`
)

// SummaryRenderer turns an extraction result into a human-readable summary.
// Field lines are rendered through Twig templates so callers can restyle the
// output without touching the traversal.
type SummaryRenderer struct {
	env       *stick.Env
	templates map[string]string
	vars      map[string]stick.Value
}

// SummaryOption configures a SummaryRenderer.
type SummaryOption func(*SummaryRenderer) error

// WithSummaryFS loads every *.twig file found under dir in the supplied FS;
// the template name is the file basename without the extension.
func WithSummaryFS[F fs.FS](fsys F, dir string) SummaryOption {
	return func(r *SummaryRenderer) error {
		return fs.WalkDir(fsys, dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".twig") {
				return nil
			}
			content, readErr := fs.ReadFile(fsys, path)
			if readErr != nil {
				return fmt.Errorf("read %s: %w", path, readErr)
			}
			name := strings.TrimSuffix(filepath.Base(path), ".twig")
			r.templates[name] = string(content)
			return nil
		})
	}
}

// WithSummaryTemplates lets you inject an in-memory template map.
func WithSummaryTemplates(m map[string]string) SummaryOption {
	return func(r *SummaryRenderer) error {
		for k, v := range m {
			r.templates[k] = v
		}
		return nil
	}
}

// WithSummaryVar adds a variable available to all templates.
func WithSummaryVar(key string, value any) SummaryOption {
	return func(r *SummaryRenderer) error {
		r.vars[key] = value
		return nil
	}
}

// NewSummaryRenderer builds a renderer from any combination of options.
func NewSummaryRenderer(opts ...SummaryOption) (*SummaryRenderer, error) {
	r := &SummaryRenderer{
		env: stick.New(nil),
		templates: map[string]string{
			"header": defaultHeaderTemplate,
			"field":  defaultFieldTemplate,
		},
		vars: make(map[string]stick.Value),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Render produces the summary text. Fields are listed in title order;
// composite fields and tables are drawn as an ASCII tree.
func (r *SummaryRenderer) Render(result *ExtractionResult) (string, error) {
	var sb strings.Builder

	header, err := r.render("header", map[string]stick.Value{
		"language": result.Language,
		"currency": result.Currency,
	})
	if err != nil {
		return "", err
	}
	sb.WriteString(header)

	fields := make([]Field, len(result.Fields))
	copy(fields, result.Fields)
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Title < fields[j].Title })

	for _, f := range fields {
		if !f.Composite() {
			line, err := r.renderField(f)
			if err != nil {
				return "", err
			}
			sb.WriteString(line + "\n")
			continue
		}
		sb.WriteString(f.Title + ":\n")
		for i, inner := range f.Content {
			line, err := r.renderField(inner)
			if err != nil {
				return "", err
			}
			sb.WriteString(treeConnector(i == len(f.Content)-1) + line + "\n")
		}
	}

	for _, table := range result.Tables {
		sb.WriteString(fmt.Sprintf("Table (page %d):\n", table.Page))
		for i, row := range table.Rows {
			cells := make([]string, len(row.Cells))
			for j, cell := range row.Cells {
				cells[j] = cell.Text()
			}
			sb.WriteString(treeConnector(i == len(table.Rows)-1) + strings.Join(cells, " | ") + "\n")
		}
	}

	return sb.String(), nil
}

func (r *SummaryRenderer) renderField(f Field) (string, error) {
	return r.render("field", map[string]stick.Value{
		"name":    f.Name,
		"title":   f.Title,
		"value":   f.Value,
		"score":   f.Score,
		"percent": fmt.Sprintf("%0.2f", 100*f.Score),
	})
}

func (r *SummaryRenderer) render(name string, ctx map[string]stick.Value) (string, error) {
	tpl, ok := r.templates[name]
	if !ok {
		return "", fmt.Errorf("template %q not found", name)
	}
	templateCtx := make(map[string]stick.Value, len(ctx)+len(r.vars))
	for k, v := range r.vars {
		templateCtx[k] = v
	}
	for k, v := range ctx {
		templateCtx[k] = v
	}
	var out strings.Builder
	if err := r.env.Execute(tpl, &out, templateCtx); err != nil {
		return "", fmt.Errorf("execute %q: %w", name, err)
	}
	return out.String(), nil
}

func treeConnector(isLast bool) string {
	if isLast {
		return "└─ "
	}
	return "├─ "
}

// Summary renders result with the default templates.
func Summary(result *ExtractionResult) (string, error) {
	r, err := NewSummaryRenderer()
	if err != nil {
		return "", err
	}
	return r.Render(result)
}
