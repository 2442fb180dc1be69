package driver

import (
	"context"
	"strconv"

	"fortio.org/safecast"

	"buckfmt/internal/diag"
	"buckfmt/internal/lexer"
	"buckfmt/internal/parser"
	"buckfmt/internal/source"
	"buckfmt/internal/syntax"
	"buckfmt/internal/token"
	"buckfmt/internal/trace"
)

// Inspection is one file loaded for the tokenize and parse commands.
// Exactly one of Tokens and Doc is set.
type Inspection struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token // последний всегда EOF
	Doc     *syntax.Document
	Bag     *diag.Bag // отсортирован
}

func inspect(ctx context.Context, path string, maxDiagnostics int) (*Inspection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return &Inspection{FileSet: fs, File: fs.Get(id), Bag: diag.NewBag(maxDiagnostics)}, nil
}

// Tokenize lexes path and keeps every token with its leading trivia.
func Tokenize(ctx context.Context, path string, maxDiagnostics int) (*Inspection, error) {
	ctx, span := trace.Start(ctx, trace.ScopeFile, path)
	defer span.End("")

	in, err := inspect(ctx, path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	in.Tokens = lexer.New(in.File, lexer.Options{Reporter: in.Bag}).All()
	in.Bag.Sort()
	span.Attr("tokens", strconv.Itoa(len(in.Tokens)))
	return in, nil
}

// Parse builds the lossless tree of path. Syntax errors land in Bag,
// never in the returned error.
func Parse(ctx context.Context, path string, maxDiagnostics int) (*Inspection, error) {
	ctx, span := trace.Start(ctx, trace.ScopeFile, path)
	defer span.End("")

	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, err
	}
	in, err := inspect(ctx, path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	res := parser.ParseFile(ctx, in.File, parser.Options{
		Reporter:  diag.NewDedupReporter(in.Bag),
		MaxErrors: maxErrors,
	})
	in.Doc = res.Doc
	in.Bag.Sort()
	return in, nil
}
