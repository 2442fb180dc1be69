package parser

import (
	"buckfmt/internal/diag"
	"buckfmt/internal/syntax"
	"buckfmt/internal/token"
)

// Ключевые слова Python, которые соединяют операнды. Для дерева они
// ничем не отличаются от '+': comprehension `[x for x in y]` разбирается
// как одно выражение.
var keywordOps = map[string]bool{
	"if": true, "else": true, "and": true, "or": true,
	"in": true, "not": true, "is": true, "for": true,
}

// startsValue - может ли текущий токен начать значение.
func (p *Parser) startsValue() bool {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident, token.String, token.Number,
		token.LBracket, token.LBrace, token.LParen:
		return true
	}
	return isUnaryOp(tok)
}

func isUnaryOp(tok token.Token) bool {
	switch tok.Kind {
	case token.Minus, token.Plus, token.Star:
		return true
	case token.Other:
		return tok.Text == "**" || tok.Text == "~"
	}
	return false
}

func (p *Parser) atBinaryOp() bool {
	tok := p.peek()
	switch {
	case tok.Kind.IsBinaryOp():
		return true
	case tok.Kind == token.Other:
		return tok.Text != "~" && tok.Text != "@"
	case tok.Kind == token.Ident:
		return keywordOps[tok.Text]
	}
	return false
}

// parseExpression: value (op+ value)*. Операторы остаются листьями между
// значениями; список значений - это Value-дети узла.
func (p *Parser) parseExpression() *syntax.Node {
	kids := []*syntax.Node{p.parseValue()}
	for p.atBinaryOp() {
		for p.atBinaryOp() {
			kids = append(kids, syntax.Leaf(p.advance()))
		}
		if !p.startsValue() {
			p.err(diag.SynExpectExpression, "expected expression, got "+describe(p.peek()))
			break
		}
		kids = append(kids, p.parseValue())
	}
	return syntax.New(syntax.Expression, kids...)
}

// parseValue: unary* primary suffix*.
func (p *Parser) parseValue() *syntax.Node {
	var kids []*syntax.Node
	for isUnaryOp(p.peek()) {
		kids = append(kids, syntax.Leaf(p.advance()))
	}

	switch p.peek().Kind {
	case token.String:
		// неявная конкатенация строк: "a" "b"
		for p.at(token.String) {
			kids = append(kids, syntax.Leaf(p.advance()))
		}
	case token.Number, token.Ident:
		kids = append(kids, syntax.Leaf(p.advance()))
	case token.LBracket:
		kids = append(kids, p.parseArray())
	case token.LBrace:
		kids = append(kids, p.parseObject())
	case token.LParen:
		kids = append(kids, p.parseParen())
	default:
		p.err(diag.SynExpectExpression, "expected expression, got "+describe(p.peek()))
		return syntax.New(syntax.Value, kids...)
	}

	for {
		switch p.peek().Kind {
		case token.Dot:
			kids = append(kids, syntax.Leaf(p.advance()))
			if p.at(token.Ident) {
				kids = append(kids, syntax.Leaf(p.advance()))
			} else {
				p.err(diag.SynExpectIdentifier, "expected identifier after '.', got "+describe(p.peek()))
			}
		case token.LParen:
			kids = append(kids, p.parseCall())
		case token.LBracket:
			kids = append(kids, p.parseSubscript())
		default:
			return syntax.New(syntax.Value, kids...)
		}
	}
}

// parseArgument: `name = expr` становится Property, всё остальное - Expression.
func (p *Parser) parseArgument() *syntax.Node {
	if p.atProperty() {
		return p.parseProperty()
	}
	return p.parseExpression()
}

// parsePairOrExpr - элемент словаря: `k: v` или одиночное выражение (`**extra`).
func (p *Parser) parsePairOrExpr() *syntax.Node {
	key := p.parseExpression()
	if !p.at(token.Colon) {
		return key
	}
	colon := syntax.Leaf(p.advance())
	if !p.startsValue() {
		p.err(diag.SynExpectExpression, "expected value after ':', got "+describe(p.peek()))
		return syntax.New(syntax.Pair, key, colon)
	}
	return syntax.New(syntax.Pair, key, colon, p.parseExpression())
}
