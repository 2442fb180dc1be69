package diagfmt

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"buckfmt/internal/source"
	"buckfmt/internal/token"
)

// TokenOutput is one token in `tokenize --format json`. Offsets are bytes
// into the normalized file.
type TokenOutput struct {
	Kind    string         `json:"kind"`
	Text    string         `json:"text,omitempty"`
	Start   uint32         `json:"start"`
	End     uint32         `json:"end"`
	Leading []TriviaOutput `json:"leading,omitempty"`
}

type TriviaOutput struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// upToEOF drops anything after the first EOF token.
func upToEOF(tokens []token.Token) []token.Token {
	for i := range tokens {
		if tokens[i].Kind == token.EOF {
			return tokens[:i+1]
		}
	}
	return tokens
}

// FormatTokensPretty writes one line per token, for example
// `3: String "':a'" at 2:9-2:13 (leading: Space)` with padded columns.
// Comments in the leading list carry their text, other trivia only the kind.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	bw := bufio.NewWriter(w)
	for i, tok := range upToEOF(tokens) {
		start, end := fs.Resolve(tok.Span)
		fmt.Fprintf(bw, "%3d: %-10s", i+1, tok.Kind)
		if tok.Text != "" {
			fmt.Fprintf(bw, " %q", tok.Text)
		}
		fmt.Fprintf(bw, " at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		if len(tok.Leading) > 0 {
			labels := make([]string, len(tok.Leading))
			for j, tr := range tok.Leading {
				labels[j] = tr.Kind.String()
				if tr.Kind == token.TriviaComment {
					labels[j] += " " + strconv.Quote(tr.Text)
				}
			}
			fmt.Fprintf(bw, " (leading: %s)", strings.Join(labels, ", "))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// FormatTokensJSON writes the tokens as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	tokens = upToEOF(tokens)
	out := make([]TokenOutput, len(tokens))
	for i, tok := range tokens {
		out[i] = TokenOutput{Kind: tok.Kind.String(), Text: tok.Text, Start: tok.Span.Start, End: tok.Span.End}
		for _, tr := range tok.Leading {
			out[i].Leading = append(out[i].Leading, TriviaOutput{Kind: tr.Kind.String(), Text: tr.Text})
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
