// Package core removes from one table every row whose value in a chosen
// column appears in a column of a second table.
//
// The package is independent of any UI or transport layer. The web server,
// the CLI and the tests all call it the same way.
//
// # Loading
//
// [Load] turns uploaded bytes into a [Table]. Files named .xlsx or .xls are
// read as spreadsheets (first sheet only); anything else is delimited text.
// In auto mode the separator is found by whole-document inference, then by
// sniffing the first [SniffSampleSize] bytes among , ; tab and |. The chosen
// separator and the strategy that found it are kept on the table.
//
//	t, err := core.Load(data, "clientes.csv", core.LoadOptions{
//	    Format: core.FormatHint{Mode: core.FormatAuto},
//	    Header: core.HeaderInfer,
//	})
//
// # Filtering
//
// [Filter] normalizes both columns ([Normalize]), builds the exclusion set
// from B, and partitions A. It returns the kept rows in original order, a
// per-value duplicate summary sorted by value, and the row counts.
//
// # Errors
//
// Load returns *[LoadError] and Filter returns *[EngineError]; both match
// their kind with errors.Is. [MapError] turns any error into a [UserMessage]
// with a support code:
//
//   - LOAD001-LOAD003: spreadsheet, delimiter and parse failures
//   - RUN001-RUN003: missing files, missing columns, invalid options
//   - FILE001, FILE004, UPL002, UPL005, RATE001: request level failures
//
// # Service
//
// [Service] wraps the pipeline for servers and the CLI. It assigns a run id,
// bounds parallel runs with a [RunLimiter], and reports each outcome to a
// [Recorder]. Within a run, A and B are loaded one after the other.
package core
