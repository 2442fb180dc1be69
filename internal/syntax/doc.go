// Package syntax holds the lossless syntax tree of a BUCK file.
//
// Every byte of the input belongs to exactly one leaf: a leaf is one token
// together with the trivia (whitespace, comments, line continuations)
// preceding it, and the trivia after the last token hangs off the EOF leaf.
// Concatenating leaf texts in order reproduces the file.
package syntax
