package parser

import (
	"buckfmt/internal/diag"
	"buckfmt/internal/syntax"
	"buckfmt/internal/token"
)

type itemKind uint8

const (
	itemExpr itemKind = iota
	itemArg           // Property или Expression
	itemPair          // Pair или Expression
)

type listSpec struct {
	kind       syntax.Kind // Array, Object, Paren, Call, Subscript
	inner      syntax.Kind // Elements или Arguments
	open       token.Kind
	close      token.Kind
	unclosed   diag.Code
	item       itemKind
	seps       []token.Kind
	allowEmpty bool // пустые позиции между разделителями (срезы `x[:2]`)
}

var (
	arraySpec = listSpec{
		kind: syntax.Array, inner: syntax.Elements,
		open: token.LBracket, close: token.RBracket, unclosed: diag.SynUnclosedBracket,
		item: itemExpr, seps: []token.Kind{token.Comma},
	}
	objectSpec = listSpec{
		kind: syntax.Object, inner: syntax.Elements,
		open: token.LBrace, close: token.RBrace, unclosed: diag.SynUnclosedBrace,
		item: itemPair, seps: []token.Kind{token.Comma},
	}
	parenSpec = listSpec{
		kind: syntax.Paren, inner: syntax.Elements,
		open: token.LParen, close: token.RParen, unclosed: diag.SynUnclosedParen,
		item: itemExpr, seps: []token.Kind{token.Comma},
	}
	callSpec = listSpec{
		kind: syntax.Call, inner: syntax.Arguments,
		open: token.LParen, close: token.RParen, unclosed: diag.SynUnclosedParen,
		item: itemArg, seps: []token.Kind{token.Comma},
	}
	subscriptSpec = listSpec{
		kind: syntax.Subscript, inner: syntax.Elements,
		open: token.LBracket, close: token.RBracket, unclosed: diag.SynUnclosedBracket,
		item: itemExpr, seps: []token.Kind{token.Comma, token.Colon},
		allowEmpty: true,
	}
)

func (p *Parser) parseArray() *syntax.Node     { return p.parseList(&arraySpec) }
func (p *Parser) parseObject() *syntax.Node    { return p.parseList(&objectSpec) }
func (p *Parser) parseParen() *syntax.Node     { return p.parseList(&parenSpec) }
func (p *Parser) parseCall() *syntax.Node      { return p.parseList(&callSpec) }
func (p *Parser) parseSubscript() *syntax.Node { return p.parseList(&subscriptSpec) }

// parseList: open items close. Без закрывающей скобки узел остаётся
// незавершённым, а чужая закрывающая скобка не съедается: её заберёт
// тот, кто её открыл.
func (p *Parser) parseList(spec *listSpec) *syntax.Node {
	open := p.advance()
	inner := p.parseItems(spec)
	if p.at(spec.close) {
		return syntax.New(spec.kind, syntax.Leaf(open), inner, syntax.Leaf(p.advance()))
	}
	p.report(spec.unclosed, diag.SevError, p.getDiagnosticSpan(),
		"expected "+closeText(spec.close)+", got "+describe(p.peek()),
		[]diag.Note{{Span: open.Span, Msg: "opened here"}})
	return syntax.New(spec.kind, syntax.Leaf(open), inner)
}

func (p *Parser) atListEnd(closer token.Kind) bool {
	k := p.peek().Kind
	return k == closer || k == token.EOF || k.IsCloser()
}

// parseItems собирает элементы вперемешку с разделителями. Пропущенный
// разделитель превращается в пустой Error, лишний токен - в Error с этим
// токеном; такие списки потом не переупорядочиваются.
func (p *Parser) parseItems(spec *listSpec) *syntax.Node {
	var kids []*syntax.Node
	for !p.atListEnd(spec.close) {
		switch {
		case p.atOr(spec.seps...) && spec.allowEmpty:
			kids = append(kids, syntax.Leaf(p.advance()))
			continue
		case p.startsValue():
			kids = append(kids, p.parseItem(spec.item))
		default:
			kids = append(kids, p.unexpected())
			continue
		}

		if p.atOr(spec.seps...) {
			kids = append(kids, syntax.Leaf(p.advance()))
			continue
		}
		if p.atListEnd(spec.close) {
			break
		}
		p.err(diag.SynExpectComma, "expected ',' or "+closeText(spec.close)+", got "+describe(p.peek()))
		kids = append(kids, p.errorMark())
	}
	return syntax.New(spec.inner, kids...)
}

func (p *Parser) parseItem(kind itemKind) *syntax.Node {
	switch kind {
	case itemArg:
		return p.parseArgument()
	case itemPair:
		return p.parsePairOrExpr()
	default:
		return p.parseExpression()
	}
}

func closeText(k token.Kind) string {
	switch k {
	case token.RParen:
		return "')'"
	case token.RBracket:
		return "']'"
	case token.RBrace:
		return "'}'"
	}
	return k.String()
}
