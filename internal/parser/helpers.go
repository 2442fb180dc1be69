package parser

import (
	"strconv"

	"buckfmt/internal/diag"
	"buckfmt/internal/source"
	"buckfmt/internal/syntax"
	"buckfmt/internal/token"
)

func (p *Parser) peek() token.Token {
	return p.peekN(0)
}

// peekN смотрит на n токенов вперёд; за концом потока всегда EOF.
func (p *Parser) peekN(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

// advance - съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan - возвращает лучший span для диагностики.
// На EOF указываем сразу за последним съеденным токеном.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{
			File:  p.lastSpan.File,
			Start: p.lastSpan.End,
			End:   p.lastSpan.End,
		}
	}
	return peek.Span
}

// unexpected заворачивает текущий токен в Error. Invalid уже
// отрепорчен лексером, второй диагностики не нужно.
func (p *Parser) unexpected() *syntax.Node {
	tok := p.peek()
	if tok.Kind != token.Invalid {
		p.err(diag.SynUnexpectedToken, "unexpected "+describe(tok))
	}
	return syntax.New(syntax.Error, syntax.Leaf(p.advance()))
}

// errorMark - пустой Error на месте пропущенного разделителя.
func (p *Parser) errorMark() *syntax.Node {
	return syntax.New(syntax.Error)
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg, nil)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes []diag.Note) bool {
	if p.opts.Reporter == nil {
		return false // нет reporter - ничего не записали
	}
	if p.opts.Enough() {
		return false // достигли максимального количества ошибок
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	p.opts.Reporter.Report(diag.Diagnostic{Severity: sev, Code: code, Message: msg, Primary: sp, Notes: notes})
	return true
}

func describe(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of file"
	}
	return quote(tok.Text)
}

func quote(s string) string {
	return strconv.Quote(s)
}

func uitoa(n uint) string {
	return strconv.FormatUint(uint64(n), 10)
}
