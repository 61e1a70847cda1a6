// Package rossum is a client for the Rossum Elis Extraction API: it submits
// a document (PDF or image) for AI-based data extraction, polls the remote
// job until it reaches a terminal state, and returns the structured result:
// key-value fields, nested field groups, and per-page tables.
//
// # Basic Usage
//
// Construct a Client once and drive one document through the whole cycle:
//
//	client, err := rossum.NewClient() // key from ROSSUM_API_KEY
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := client.ExtractFile(ctx, "invoice.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, f := range result.Fields {
//	    fmt.Printf("%s = %s (%.2f)\n", f.Name, f.Value, f.Score)
//	}
//
// Extract blocks for the duration of the job: it uploads the document,
// queries the job status at a fixed interval while the service reports
// "processing", and returns as soon as the status turns terminal. The poll
// budget defaults to 120 attempts at 5 second steps; exhausting it yields
// ErrPollTimeout. A timed-out call can simply be re-invoked, which creates a
// brand-new job.
//
// # Options
//
// Per-call behavior is controlled with functional options:
//
//	result, err := client.Extract(ctx, rossum.NewFileDocument("invoice.pdf"),
//	    rossum.WithFilter(rossum.FilterAll),
//	    rossum.WithLocale("en_US"),
//	    rossum.WithOutputFile("out/invoice.json"),
//	    rossum.WithDeduplication(),
//	)
//
// Documents come from the filesystem (NewFileDocument) or from memory
// (NewBytesDocument). The upload content type is inferred from the filename
// extension, with a byte-sniffing fallback for extensionless in-memory data.
//
// # Field Deduplication
//
// With the "all" filter the service returns every extraction hypothesis, so
// one field name may appear several times at different confidence scores.
// DeduplicateFields collapses such groups into a canonical set: most names
// keep only their best-scoring entry, address-line names keep the best entry
// per distinct value, and tax detail groups are preserved with their nested
// content deduplicated recursively. WithDeduplication applies the same
// canonicalization to the result of Extract.
//
// # Testing
//
// The remote service sits behind the Transport interface. WithTransport
// swaps in a fake, and NewForTesting returns a ready-made client that
// completes immediately with a canned payload:
//
//	client := rossum.NewForTesting(payload)
//	result, err := client.Extract(ctx, rossum.NewBytesDocument("doc.pdf", data))
//
// Beyond the core cycle the package renders human-readable summaries
// (SummaryRenderer), validates terminal payloads against an embedded JSON
// Schema (ValidateResult), exports results as XLSX workbooks (ExportXLSX),
// and runs batches of documents over a bounded-concurrency Runner
// (ExtractAll).
package rossum
