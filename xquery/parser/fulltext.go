package parser

import (
	"github.com/gnoswap-labs/xqlint/xquery/lexer"
	"github.com/gnoswap-labs/xqlint/xquery/syntax"
)

// Full Text selections, as in `$doc contains text "a" ftand "b" window 3 words`.

func (p *parser) parseFTSelection() {
	m := p.mark()
	p.parseFTOr()
	for p.parseFTPosFilter() {
	}
	p.done(m, syntax.KindFTSelection)
}

func (p *parser) parseFTOr() {
	p.binary(syntax.KindFTOr, p.parseFTAnd, p.words("ftor"), false)
}

func (p *parser) parseFTAnd() {
	p.binary(syntax.KindFTAnd, p.parseFTMildNot, p.words("ftand"), false)
}

func (p *parser) mildNotOp() int {
	if p.atWords("not", "in") {
		return 2
	}
	return 0
}

func (p *parser) parseFTMildNot() {
	p.binary(syntax.KindFTMildNot, p.parseFTUnaryNot, p.mildNotOp, false)
}

func (p *parser) parseFTUnaryNot() {
	m := p.mark()
	if p.eat("ftnot") {
		p.parseFTPrimaryWithOptions()
		p.done(m, syntax.KindFTUnaryNot)
		return
	}
	p.parseFTPrimaryWithOptions()
}

func (p *parser) parseFTPrimaryWithOptions() {
	m := p.mark()
	p.parseFTPrimary()
	wrap := false
	if p.atWord(0, "using") {
		p.parseFTMatchOptions()
		wrap = true
	}
	if p.atWord(0, "weight") && p.peekKind(1) == lexer.BlockOpen {
		wm := p.mark()
		p.bump()
		p.parseEnclosedExpr()
		p.done(wm, syntax.KindFTWeight)
		wrap = true
	}
	if wrap {
		p.done(m, syntax.KindFTPrimaryWithOptions)
	}
}

func (p *parser) parseFTPrimary() {
	switch p.peekKind(0) {
	case lexer.StringLiteralStart, lexer.BlockOpen:
		m := p.mark()
		if p.at(lexer.BlockOpen) {
			p.parseEnclosedExpr()
		} else {
			p.parseStringLiteral()
		}
		p.parseFTAnyallOption()
		p.done(m, syntax.KindFTWords)
		if p.atWord(0, "occurs") {
			tm := p.mark()
			p.bump()
			p.parseFTRange()
			p.expectWord("times")
			p.done(tm, syntax.KindFTTimes)
		}
	case lexer.ParenOpen:
		p.bump()
		p.parseFTSelection()
		p.closeWith(lexer.ParenOpen, lexer.ParenClose, "')'")
	case lexer.PragmaBegin:
		m := p.mark()
		for p.at(lexer.PragmaBegin) {
			p.parsePragma()
		}
		if p.expect(lexer.BlockOpen, "'{'") {
			if !p.at(lexer.BlockClose) {
				p.parseFTSelection()
			}
			p.closeWith(lexer.BlockOpen, lexer.BlockClose, "'}'")
		}
		p.done(m, syntax.KindFTExtensionSelection)
	default:
		p.errorf("expected full-text words")
	}
}

func (p *parser) parseFTAnyallOption() {
	m := p.mark()
	switch {
	case p.eat("any"):
		p.eat("word")
	case p.eat("all"):
		p.eat("words")
	case p.eat("phrase"):
	default:
		return
	}
	p.done(m, syntax.KindFTAnyallOption)
}

func (p *parser) parseFTRange() {
	m := p.mark()
	switch {
	case p.eat("exactly"):
		p.parseAdditiveExpr()
	case p.atWords("at", "least"), p.atWords("at", "most"):
		p.bump()
		p.bump()
		p.parseAdditiveExpr()
	case p.eat("from"):
		p.parseAdditiveExpr()
		p.expectWord("to")
		p.parseAdditiveExpr()
	default:
		p.errorf("expected 'exactly', 'at least', 'at most' or 'from'")
	}
	p.done(m, syntax.KindFTRange)
}

func (p *parser) parseFTUnit(units ...string) {
	for _, u := range units {
		if p.eat(u) {
			return
		}
	}
	p.errorf("expected '%s'", units[0])
}

func (p *parser) parseFTPosFilter() bool {
	m := p.mark()
	switch {
	case p.eat("ordered"):
		p.done(m, syntax.KindFTOrder)
	case p.atWord(0, "window"):
		p.bump()
		p.parseAdditiveExpr()
		p.parseFTUnit("words", "sentences", "paragraphs")
		p.done(m, syntax.KindFTWindow)
	case p.atWord(0, "distance"):
		p.bump()
		p.parseFTRange()
		p.parseFTUnit("words", "sentences", "paragraphs")
		p.done(m, syntax.KindFTDistance)
	case p.atWord(0, "same"), p.atWord(0, "different"):
		p.bump()
		p.parseFTUnit("sentence", "paragraph")
		p.done(m, syntax.KindFTScope)
	case p.atWords("at", "start"), p.atWords("at", "end"), p.atWords("entire", "content"):
		p.bump()
		p.bump()
		p.done(m, syntax.KindFTContent)
	default:
		return false
	}
	return true
}

// parseFTMatchOptions parses ("using" FTMatchOption)+.
func (p *parser) parseFTMatchOptions() {
	m := p.mark()
	for p.eat("using") {
		p.parseFTMatchOption()
	}
	p.done(m, syntax.KindFTMatchOptions)
}

func (p *parser) parseFTMatchOption() {
	m := p.mark()
	switch {
	case p.eat("language"):
		p.parseStringLiteral()
	case p.eat("wildcards"), p.eat("stemming"), p.eat("lowercase"), p.eat("uppercase"), p.eat("fuzzy"):
	case p.eat("case"), p.eat("diacritics"):
		if !p.eat("sensitive") && !p.eat("insensitive") {
			p.errorf("expected 'sensitive' or 'insensitive'")
		}
	case p.eat("no"):
		switch {
		case p.eat("wildcards"), p.eat("stemming"), p.eat("thesaurus"):
		case p.eat("stop"):
			p.expectWord("words")
		default:
			p.errorf("expected match option")
		}
	case p.eat("thesaurus"):
		if p.eatKind(lexer.ParenOpen) {
			p.parseFTThesaurusID()
			for p.eatKind(lexer.Comma) {
				p.parseFTThesaurusID()
			}
			p.closeWith(lexer.ParenOpen, lexer.ParenClose, "')'")
		} else {
			p.parseFTThesaurusID()
		}
	case p.atWords("stop", "words"):
		p.bump()
		p.bump()
		if !p.eat("default") {
			p.parseFTStopWords()
		}
		for p.eat("union") || p.eat("except") {
			p.parseFTStopWords()
		}
	case p.eat("option"):
		p.parseEQName("option name")
		p.parseStringLiteral()
	default:
		p.errorf("expected match option")
	}
	p.done(m, syntax.KindFTMatchOption)
}

func (p *parser) parseFTThesaurusID() {
	if p.eat("default") {
		return
	}
	if !p.expectWord("at") {
		return
	}
	p.parseURILiteral()
	if p.eat("relationship") {
		p.parseStringLiteral()
	}
	if p.atWord(0, "exactly") || p.atWord(0, "at") || p.atWord(0, "from") {
		p.parseFTRange()
		p.expectWord("levels")
	}
}

func (p *parser) parseFTStopWords() {
	if p.eat("at") {
		p.parseURILiteral()
		return
	}
	if !p.expect(lexer.ParenOpen, "'('") {
		return
	}
	p.parseStringLiteral()
	for p.eatKind(lexer.Comma) {
		p.parseStringLiteral()
	}
	p.closeWith(lexer.ParenOpen, lexer.ParenClose, "')'")
}
