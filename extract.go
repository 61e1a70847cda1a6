package rossum

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ExtractOptions represents per-call options for Extract.
type ExtractOptions struct {
	Filter      Filter
	Locale      string // opaque server-side hint, e.g. "en_US"
	Tables      bool
	OutputFile  string // persist the verbatim terminal JSON there
	Deduplicate bool   // canonicalize fields via DeduplicateFields
	Validate    bool   // check the terminal payload against the result schema
	Observer    Observer
}

// ExtractOption mutates ExtractOptions.
type ExtractOption func(*ExtractOptions)

// WithFilter selects the confidence tier of returned fields (best or all).
func WithFilter(f Filter) ExtractOption {
	return func(o *ExtractOptions) { o.Filter = f }
}

// WithLocale passes a locale hint through to the service. It influences
// ambiguous parses (12.6.2018 is June 12th under cs_CZ but December 6th under
// en_US) and is never interpreted locally.
func WithLocale(locale string) ExtractOption {
	return func(o *ExtractOptions) { o.Locale = locale }
}

// WithTables toggles table extraction.
func WithTables(enabled bool) ExtractOption {
	return func(o *ExtractOptions) { o.Tables = enabled }
}

// WithOutputFile persists the full terminal JSON to path before returning,
// creating parent directories as needed.
func WithOutputFile(path string) ExtractOption {
	return func(o *ExtractOptions) { o.OutputFile = path }
}

// WithDeduplication runs DeduplicateFields on the returned field list.
func WithDeduplication() ExtractOption {
	return func(o *ExtractOptions) { o.Deduplicate = true }
}

// WithValidation validates the terminal payload against the embedded result
// schema before it is decoded.
func WithValidation() ExtractOption {
	return func(o *ExtractOptions) { o.Validate = true }
}

// WithObserver registers a per-attempt progress callback for the poll phase.
func WithObserver(fn Observer) ExtractOption {
	return func(o *ExtractOptions) { o.Observer = fn }
}

// Extract drives one document through the whole submit, poll and fetch cycle
// and returns the decoded result. Exactly one job is created per call and
// submission is never retried; only the status query repeats while the job
// keeps processing. A timed-out or failed call can simply be re-invoked,
// which creates a brand-new job.
func (c *Client) Extract(ctx context.Context, doc Document, optFns ...ExtractOption) (*ExtractionResult, error) {
	opts := ExtractOptions{Filter: FilterBest, Locale: DefaultLocale, Tables: true}
	for _, fn := range optFns {
		fn(&opts)
	}
	if !opts.Filter.valid() {
		return nil, fmt.Errorf("%w, got %q", ErrInvalidFilter, opts.Filter)
	}

	upload, err := doc.Payload(ctx, c.log)
	if err != nil {
		return nil, err
	}

	c.log.Debug("starting extraction", "filename", upload.Filename,
		"filter", opts.Filter, "locale", opts.Locale, "tables", opts.Tables)

	resp, err := c.transport.Submit(ctx, SubmitRequest{
		Filename:    upload.Filename,
		Data:        upload.Data,
		ContentType: upload.ContentType,
		Locale:      opts.Locale,
		Tables:      opts.Tables,
	})
	if err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, &SubmissionError{Reason: resp.Error}
	}
	if resp.ID == "" {
		return nil, ErrMissingJobID
	}
	c.log.Debug("document submitted", "job_id", resp.ID)

	raw, err := waitReady(ctx, c.log,
		func(ctx context.Context) (json.RawMessage, error) {
			return c.transport.Status(ctx, resp.ID, opts.Filter)
		},
		c.pollInterval, c.maxAttempts, opts.Observer)
	if err != nil {
		return nil, err
	}

	var env statusEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("parse terminal response: %w", err)
	}
	if env.Status == StatusError {
		return nil, &ExtractionError{Message: env.Message}
	}

	if opts.Validate {
		if err := ValidateResult(raw); err != nil {
			return nil, err
		}
	}
	if opts.OutputFile != "" {
		if err := SaveResult(raw, opts.OutputFile); err != nil {
			return nil, err
		}
		c.log.Debug("result persisted", "path", opts.OutputFile)
	}

	var result ExtractionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("parse extraction result: %w", err)
	}
	result.Preview = c.PreviewURL(resp.ID)
	if opts.Deduplicate {
		result.Fields = DeduplicateFields(result.Fields)
	}

	c.log.Info("extraction completed", "job_id", resp.ID,
		"fields", len(result.Fields), "tables", len(result.Tables))
	return &result, nil
}

// ExtractFile is a convenience wrapper around Extract for a document path.
func (c *Client) ExtractFile(ctx context.Context, path string, optFns ...ExtractOption) (*ExtractionResult, error) {
	return c.Extract(ctx, NewFileDocument(path), optFns...)
}

// SaveResult writes a terminal payload as indented JSON, creating parent
// directories as needed. Concurrent writers of the same path are not
// synchronized; callers must serialize if that matters.
func SaveResult(raw json.RawMessage, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	var buf any
	if err := json.Unmarshal(raw, &buf); err != nil {
		return fmt.Errorf("parse result for saving: %w", err)
	}
	pretty, err := json.MarshalIndent(buf, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, pretty, 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
