package parser

import (
	"context"
	"slices"

	"buckfmt/internal/diag"
	"buckfmt/internal/lexer"
	"buckfmt/internal/source"
	"buckfmt/internal/syntax"
	"buckfmt/internal/token"
	"buckfmt/internal/trace"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Doc *syntax.Document
	Bag *diag.Bag
}

// Parser - состояние парсера на один файл
type Parser struct {
	file     *source.File
	toks     []token.Token // весь поток токенов; последний всегда EOF
	pos      int
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile - входная точка для разбора одного файла.
// Дерево строится всегда, даже для битого ввода: текст документа
// совпадает с содержимым файла байт в байт.
func ParseFile(ctx context.Context, file *source.File, opts Options) Result {
	_, span := trace.Start(ctx, trace.ScopePass, "parse")
	defer span.End("")

	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	p := Parser{
		file: file,
		toks: lx.All(),
		opts: opts,
		lastSpan: source.Span{
			File: file.ID,
		},
	}

	root := p.parseFile()
	doc := syntax.NewDocument(file, root)

	span.Attr("errors", uitoa(p.opts.CurrentErrors))
	return Result{
		Doc: doc,
		Bag: bagOf(opts.Reporter),
	}
}

// bagOf достаёт Bag из цепочки репортеров, если он там есть.
func bagOf(r diag.Reporter) *diag.Bag {
	for r != nil {
		switch v := r.(type) {
		case *diag.Bag:
			return v
		case *diag.DedupReporter:
			r = v.Next()
		default:
			return nil
		}
	}
	return nil
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// parseFile - основной цикл верхнего уровня: пока не EOF - parseStmt.
func (p *Parser) parseFile() *syntax.Node {
	var kids []*syntax.Node
	for !p.at(token.EOF) {
		kids = append(kids, p.parseStmt())
	}
	kids = append(kids, syntax.Leaf(p.advance()))
	return syntax.New(syntax.File, kids...)
}

// parseStmt: присваивание верхнего уровня, выражение (обычно вызов правила),
// либо ошибка. Каждая ветка потребляет хотя бы один токен.
func (p *Parser) parseStmt() *syntax.Node {
	switch {
	case p.atProperty():
		return p.parseProperty()
	case p.at(token.Semicolon):
		return syntax.Leaf(p.advance())
	case p.startsValue():
		return p.parseExpression()
	case p.peek().Kind.IsCloser():
		tok := p.peek()
		p.err(diag.SynUnexpectedCloser, "unexpected "+quote(tok.Text))
		return syntax.New(syntax.Error, syntax.Leaf(p.advance()))
	default:
		return p.unexpected()
	}
}

// atProperty - IDENT '='
func (p *Parser) atProperty() bool {
	return p.at(token.Ident) && p.peekN(1).Kind == token.Assign
}

// parseProperty разбирает `name = expr`. Если значения нет, Property
// остаётся без Expression.
func (p *Parser) parseProperty() *syntax.Node {
	name := syntax.New(syntax.Lvalue, syntax.Leaf(p.advance()))
	assign := syntax.Leaf(p.advance())
	if !p.startsValue() {
		p.err(diag.SynPropertyNoValue, "expected value for "+quote(name.Name()))
		return syntax.New(syntax.Property, name, assign)
	}
	return syntax.New(syntax.Property, name, assign, p.parseExpression())
}
