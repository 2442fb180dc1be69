// Package diag defines the diagnostic model shared by the lexer, the parser
// and the driver.
//
// Producers emit through a Reporter so that they never depend on storage or
// rendering. A *Bag is a Reporter that keeps diagnostics up to a limit and
// sorts them; DedupReporter sits in front of it to drop repeats. Rendering lives in internal/diagfmt; FormatShort gives a
// stable one-line-per-entry form used by the CLI and by tests.
//
// Diagnostics never block formatting: the parser always produces a lossless
// tree, and the driver decides (via --strict) whether syntax errors stop a
// file from being rewritten.
package diag
