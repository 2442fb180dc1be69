// Package token defines lexical token kinds and trivia for Buck build files.
// Invariants:
//   - Token.Text is a slice of the original source.
//   - Token.Span matches Text exactly (Start..End).
//   - Whitespace, newlines, '#' comments and backslash line continuations are
//     trivia; they are attached to the following token as Leading and never
//     appear in the main token stream. Trivia after the last token belongs to EOF.
//   - Concatenating Leading texts and Text of every token, EOF included,
//     reproduces the input byte-for-byte.
package token
