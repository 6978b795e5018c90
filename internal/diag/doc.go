// Package diag defines the diagnostic record shared by every stage of the
// stderr pipeline.
//
// # Purpose
//
//   - Provide deterministic data structures for compiler findings recovered
//     from raw toolchain output (internal/scan, internal/aggregate).
//   - Offer small helpers (Bag, Count, FormatShort) that let consumers reason
//     about a result without coupling to a renderer.
//
// # Scope
//
// Package diag performs no parsing, IO or formatting beyond the one-line short
// form. Rendering lives in internal/diagfmt and editor projection in
// internal/marker.
//
// # Data model
//
// Record is the central type:
//
//   - Severity – Error or Warning, see severity.go.
//   - Code – optional bracketed identifier (E0425, unused_variables).
//   - Message – the header text; never empty once a record leaves the
//     aggregator.
//   - Location – optional 1-based line/column of the primary span.
//   - Extended – ordered context lines printed under the header.
//
// Records are values. Slices of records are ordered by detection, never
// sorted: the first diagnostic in stderr stays first.
package diag
