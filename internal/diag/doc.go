// Package diag defines the diagnostic model shared by every stage of an
// expansion and by the driver.
//
// Diagnostic is the central record: Severity, a compact numeric Code with a
// stable string ID (LEX/SYN/TPL/IO/EXP/CFG/OBS ranges), a short Message, the
// Primary span (for derive failures this is the expansion site), optional
// Notes pointing at secondary spans, and optional Fixes.
//
// Producers emit through a Reporter (BagReporter, DedupReporter,
// MultiReporter) or build a Diagnostic value directly. Rendering lives in
// internal/diagfmt; this package does no I/O.
//
// Keep the model deterministic: diagnostics are cached by the driver and
// compared in tests, so new fields must be plain data.
package diag
