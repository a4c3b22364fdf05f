// Package lexer turns GQL source text into an ordered token.Token
// sequence. It is a hand-written single-pass scanner over the input's
// runes, in the spirit of the cursor primitives in hashicorp/mql's
// lexer: read one rune at a time, optionally back up one, and slice the
// buffer between marks to build literals.
package lexer

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/gqlengine/gql/gqlerrors"
	"github.com/gqlengine/gql/token"
)

type lexer struct {
	src  []rune
	pos  int
	line int
	col  int
}

// Tokenize scans src into a sequence of tokens terminated by an EOF
// token. It returns a *gqlerrors.Diagnostic on the first lexical error
// (unterminated literal, malformed numeric base, unknown character).
func Tokenize(src string) ([]token.Token, error) {
	l := &lexer{src: []rune(src), line: 1, col: 1}
	var tokens []token.Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, nil
		}
	}
}

func (l *lexer) loc() token.SourceLocation {
	return token.SourceLocation{LineStart: l.line, LineEnd: l.line, ColumnStart: l.col, ColumnEnd: l.col}
}

func (l *lexer) eof() bool { return l.pos >= len(l.src) }

func (l *lexer) peek() rune {
	if l.eof() {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) peekAt(off int) rune {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) skipTrivia() error {
	for !l.eof() {
		r := l.peek()
		switch {
		case unicode.IsSpace(r):
			l.advance()
		case r == '-' && l.peekAt(1) == '-':
			for !l.eof() && l.peek() != '\n' {
				l.advance()
			}
		case r == '/' && l.peekAt(1) == '*':
			start := l.loc()
			l.advance()
			l.advance()
			closed := false
			for !l.eof() {
				if l.peek() == '*' && l.peekAt(1) == '/' {
					l.advance()
					l.advance()
					closed = true
					break
				}
				l.advance()
			}
			if !closed {
				return gqlerrors.New(gqlerrors.ErrUnterminatedComment.New(), start)
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *lexer) next() (token.Token, error) {
	if err := l.skipTrivia(); err != nil {
		return token.Token{}, err
	}
	if l.eof() {
		return token.Token{Kind: token.EOF, Location: l.loc()}, nil
	}

	start := l.loc()
	r := l.peek()

	switch {
	case isIdentStart(r):
		return l.consumeIdentifier(start)
	case r == '`':
		return l.consumeBacktick(start)
	case r == '@':
		return l.consumeGlobalOrContains(start)
	case unicode.IsDigit(r):
		return l.consumeNumber(start)
	case r == '\'' || r == '"':
		return l.consumeString(start, r)
	default:
		return l.consumeOperator(start)
	}
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func (l *lexer) consumeIdentifier(start token.SourceLocation) (token.Token, error) {
	var b strings.Builder
	for !l.eof() && isIdentPart(l.peek()) {
		b.WriteRune(l.advance())
	}
	lit := b.String()
	lower := strings.ToLower(lit)
	if kind, ok := token.Keywords[lower]; ok {
		switch kind {
		case token.Not:
			return l.maybeNotRegex(start)
		}
		return token.Token{Kind: kind, Literal: lit, Location: start}, nil
	}
	switch lower {
	case "true":
		return token.Token{Kind: token.True, Literal: lit, Location: start}, nil
	case "false":
		return token.Token{Kind: token.False, Literal: lit, Location: start}, nil
	case "null":
		return token.Token{Kind: token.Null, Literal: lit, Location: start}, nil
	}
	return token.Token{Kind: token.Symbol, Literal: lit, Location: start}, nil
}

// maybeNotRegex folds "NOT REGEXP" into a single NotRegex token when the
// keywords are adjacent; otherwise NOT is returned on its own and the
// parser handles NOT LIKE / NOT IN / NOT BETWEEN by peeking two tokens.
func (l *lexer) maybeNotRegex(start token.SourceLocation) (token.Token, error) {
	save := *l
	if err := l.skipTrivia(); err != nil {
		return token.Token{}, err
	}
	if l.matchesKeyword("regexp") {
		l.consumeIdentifier(start) // nolint:errcheck // keyword match already validated above
		return token.Token{Kind: token.NotRegex, Literal: "not regexp", Location: start}, nil
	}
	*l = save
	return token.Token{Kind: token.Not, Literal: "not", Location: start}, nil
}

func (l *lexer) matchesKeyword(kw string) bool {
	if l.eof() || !isIdentStart(l.peek()) {
		return false
	}
	end := l.pos
	for end < len(l.src) && isIdentPart(l.src[end]) {
		end++
	}
	return strings.ToLower(string(l.src[l.pos:end])) == kw
}

func (l *lexer) consumeBacktick(start token.SourceLocation) (token.Token, error) {
	l.advance()
	var b strings.Builder
	for {
		if l.eof() {
			return token.Token{}, gqlerrors.New(gqlerrors.ErrUnterminatedBacktick.New(), start)
		}
		r := l.advance()
		if r == '`' {
			break
		}
		b.WriteRune(r)
	}
	return token.Token{Kind: token.Symbol, Literal: b.String(), Location: start}, nil
}

func (l *lexer) consumeGlobalOrContains(start token.SourceLocation) (token.Token, error) {
	l.advance() // '@'
	if l.peek() == '>' {
		l.advance()
		return token.Token{Kind: token.Contains, Literal: "@>", Location: start}, nil
	}
	var b strings.Builder
	for !l.eof() && isIdentPart(l.peek()) {
		b.WriteRune(l.advance())
	}
	return token.Token{Kind: token.GlobalVariable, Literal: b.String(), Location: start}, nil
}

func (l *lexer) consumeString(start token.SourceLocation, quote rune) (token.Token, error) {
	l.advance()
	var b strings.Builder
	for {
		if l.eof() {
			return token.Token{}, gqlerrors.New(gqlerrors.ErrUnterminatedString.New(), start)
		}
		r := l.advance()
		if r == quote {
			break
		}
		b.WriteRune(r)
	}
	return token.Token{Kind: token.String, Literal: b.String(), Location: start}, nil
}

func (l *lexer) consumeNumber(start token.SourceLocation) (token.Token, error) {
	if l.peek() == '0' {
		switch l.peekAt(1) {
		case 'x', 'X':
			return l.consumeBasedInteger(start, 16, "0x")
		case 'b', 'B':
			return l.consumeBasedInteger(start, 2, "0b")
		case 'o', 'O':
			return l.consumeBasedInteger(start, 8, "0o")
		}
	}

	var b strings.Builder
	isFloat := false
	for !l.eof() && (unicode.IsDigit(l.peek()) || l.peek() == '_') {
		if l.peek() != '_' {
			b.WriteRune(l.peek())
		}
		l.advance()
	}
	if l.peek() == '.' && unicode.IsDigit(l.peekAt(1)) {
		isFloat = true
		b.WriteRune(l.advance())
		for !l.eof() && (unicode.IsDigit(l.peek()) || l.peek() == '_') {
			if l.peek() != '_' {
				b.WriteRune(l.peek())
			}
			l.advance()
		}
	}

	lit := b.String()
	if isFloat {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return token.Token{}, gqlerrors.New(gqlerrors.ErrFloatOutOfRange.New(lit), start)
		}
		return token.Token{Kind: token.Float, FloatValue: f, Literal: lit, Location: start}, nil
	}
	i, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return token.Token{}, gqlerrors.New(gqlerrors.ErrIntegerOverflow.New(lit), start)
	}
	return token.Token{Kind: token.Integer, IntegerValue: i, Literal: lit, Location: start}, nil
}

func (l *lexer) consumeBasedInteger(start token.SourceLocation, base int, prefix string) (token.Token, error) {
	l.advance()
	l.advance()
	var b strings.Builder
	for !l.eof() && (isBaseDigit(l.peek(), base) || l.peek() == '_') {
		if l.peek() != '_' {
			b.WriteRune(l.peek())
		}
		l.advance()
	}
	if b.Len() == 0 {
		return token.Token{}, gqlerrors.New(gqlerrors.ErrMissingDigitsAfterBase.New(prefix), start)
	}
	i, err := strconv.ParseInt(b.String(), base, 64)
	if err != nil {
		return token.Token{}, gqlerrors.New(gqlerrors.ErrIntegerOverflow.New(prefix+b.String()), start)
	}
	return token.Token{Kind: token.Integer, IntegerValue: i, Literal: prefix + b.String(), Location: start}, nil
}

func isBaseDigit(r rune, base int) bool {
	switch base {
	case 2:
		return r == '0' || r == '1'
	case 8:
		return r >= '0' && r <= '7'
	case 16:
		return unicode.IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	default:
		return unicode.IsDigit(r)
	}
}

func (l *lexer) consumeOperator(start token.SourceLocation) (token.Token, error) {
	r := l.advance()
	two := func(k token.Kind) (token.Token, error) {
		l.advance()
		return token.Token{Kind: k, Location: start}, nil
	}
	switch r {
	case '+':
		return token.Token{Kind: token.Plus, Location: start}, nil
	case '-':
		return token.Token{Kind: token.Minus, Location: start}, nil
	case '*':
		return token.Token{Kind: token.Star, Location: start}, nil
	case '/':
		return token.Token{Kind: token.Slash, Location: start}, nil
	case '%':
		return token.Token{Kind: token.Percentage, Location: start}, nil
	case '^':
		return token.Token{Kind: token.Caret, Location: start}, nil
	case '~':
		return token.Token{Kind: token.BitwiseNot, Location: start}, nil
	case ',':
		return token.Token{Kind: token.Comma, Location: start}, nil
	case '.':
		return token.Token{Kind: token.Dot, Location: start}, nil
	case ';':
		return token.Token{Kind: token.Semicolon, Location: start}, nil
	case '(':
		return token.Token{Kind: token.LeftParen, Location: start}, nil
	case ')':
		return token.Token{Kind: token.RightParen, Location: start}, nil
	case '[':
		return token.Token{Kind: token.LeftBracket, Location: start}, nil
	case ']':
		return token.Token{Kind: token.RightBracket, Location: start}, nil
	case '|':
		if l.peek() == '|' {
			return two(token.OrOr)
		}
		return token.Token{Kind: token.BitwiseOr, Location: start}, nil
	case '&':
		if l.peek() == '&' {
			return two(token.AndAnd)
		}
		return token.Token{Kind: token.BitwiseAnd, Location: start}, nil
	case ':':
		if l.peek() == '=' {
			return two(token.ColonEqual)
		}
		if l.peek() == ':' {
			return two(token.ColonColon)
		}
		return token.Token{Kind: token.Colon, Location: start}, nil
	case '=':
		if l.peek() == '=' {
			return token.Token{}, gqlerrors.New(gqlerrors.ErrUnknownCharacter.New("=="), start)
		}
		return token.Token{Kind: token.Equal, Location: start}, nil
	case '!':
		if l.peek() == '=' {
			return two(token.BangEqual)
		}
		return token.Token{Kind: token.Bang, Location: start}, nil
	case '<':
		switch l.peek() {
		case '=':
			l.advance()
			if l.peek() == '>' {
				return two(token.NullSafeEqual)
			}
			return token.Token{Kind: token.LessEqual, Location: start}, nil
		case '>':
			return two(token.LessGreater)
		case '<':
			return two(token.BitwiseLeftShift)
		case '@':
			return two(token.ContainedBy)
		}
		return token.Token{Kind: token.Less, Location: start}, nil
	case '>':
		switch l.peek() {
		case '=':
			return two(token.GreaterEqual)
		case '>':
			return two(token.BitwiseRightShift)
		}
		return token.Token{Kind: token.Greater, Location: start}, nil
	default:
		return token.Token{}, gqlerrors.New(gqlerrors.ErrUnknownCharacter.New(string(r)), start)
	}
}
