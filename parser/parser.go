// Package parser is a recursive-descent, explicit-precedence-climbing
// parser that type-checks as it goes: every expression node is built
// with its resolved type already attached, inserting an implicit Cast
// node wherever §4.2's one-way coercion rule legalizes an otherwise
// ill-typed operand pair.
package parser

import (
	"github.com/gqlengine/gql/ast"
	"github.com/gqlengine/gql/environment"
	"github.com/gqlengine/gql/gqlerrors"
	"github.com/gqlengine/gql/internal/similartext"
	"github.com/gqlengine/gql/token"
	"github.com/gqlengine/gql/types"
)

// Parser walks a fixed token slice, building typed ast/plan nodes.
type Parser struct {
	tokens []token.Token
	pos    int
	env    *environment.Environment
}

// New builds a Parser over tokens against env; parseQuery clears env's
// scopes (env.ClearSession) at the start of every query it parses.
func New(tokens []token.Token, env *environment.Environment) *Parser {
	return &Parser{tokens: tokens, env: env}
}

func (p *Parser) current() token.Token { return p.tokens[p.pos] }

func (p *Parser) atEnd() bool { return p.current().Kind == token.EOF }

func (p *Parser) check(k token.Kind) bool { return !p.atEnd() && p.current().Kind == k }

func (p *Parser) advance() token.Token {
	t := p.current()
	if !p.atEnd() {
		p.pos++
	}
	return t
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if p.check(k) {
		return p.advance(), nil
	}
	got := p.current()
	return token.Token{}, gqlerrors.New(
		gqlerrors.ErrUnexpectedToken.New(k.String(), got.Kind.String()), got.Location)
}

// ParsePrograms parses the whole semicolon-separated token stream into
// its top-level queries.
func (p *Parser) ParsePrograms() ([]ast.Query, error) {
	var queries []ast.Query
	for !p.atEnd() {
		for p.match(token.Semicolon) {
		}
		if p.atEnd() {
			break
		}
		q, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		queries = append(queries, q)
		if !p.atEnd() && !p.check(token.Semicolon) {
			got := p.current()
			return nil, gqlerrors.New(
				gqlerrors.ErrUnexpectedToken.New(token.Semicolon.String(), got.Kind.String()), got.Location)
		}
	}
	return queries, nil
}

func (p *Parser) parseQuery() (ast.Query, error) {
	p.env.ClearSession()
	switch p.current().Kind {
	case token.Do:
		return p.parseDo()
	case token.Set:
		return p.parseSet()
	case token.Describe:
		return p.parseDescribe()
	case token.Show:
		return p.parseShowTables()
	case token.Select:
		return p.parseSelect()
	default:
		got := p.current()
		return nil, gqlerrors.New(
			gqlerrors.ErrUnexpectedToken.New("a query (DO/SET/SELECT/DESCRIBE/SHOW)", got.Kind.String()), got.Location)
	}
}

func (p *Parser) parseDo() (ast.Query, error) {
	start := p.advance().Location
	ctx := NewContext()
	var exprs []ast.Expression
	for {
		e, err := p.parseExpression(ctx)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		if !p.match(token.Comma) {
			break
		}
	}
	return &ast.DoStatement{Exprs: exprs, Loc: start}, nil
}

func (p *Parser) parseSet() (ast.Query, error) {
	start := p.advance().Location
	name, err := p.expect(token.GlobalVariable)
	if err != nil {
		return nil, err
	}
	if !p.match(token.Equal) && !p.match(token.ColonEqual) {
		got := p.current()
		return nil, gqlerrors.New(
			gqlerrors.ErrUnexpectedToken.New("= or :=", got.Kind.String()), got.Location)
	}
	ctx := NewContext()
	value, err := p.parseExpression(ctx)
	if err != nil {
		return nil, err
	}
	p.env.SetGlobal(name.Literal, nil, value.ExprType())
	return &ast.SetStatement{Name: name.Literal, Value: value, Loc: start}, nil
}

func (p *Parser) parseDescribe() (ast.Query, error) {
	start := p.advance().Location
	name, err := p.expect(token.Symbol)
	if err != nil {
		return nil, err
	}
	if !p.env.Schema.HasTable(name.Literal) {
		return nil, p.unknownTableErr(name)
	}
	return &ast.DescribeStatement{Table: name.Literal, Loc: start}, nil
}

func (p *Parser) parseShowTables() (ast.Query, error) {
	start := p.advance().Location
	if _, err := p.expect(token.Tables); err != nil {
		return nil, err
	}
	return &ast.ShowTablesStatement{Loc: start}, nil
}

func (p *Parser) unknownTableErr(tok token.Token) error {
	err := gqlerrors.ErrUnknownTable.New(tok.Literal, "")
	d := gqlerrors.New(err, tok.Location)
	if hint := similartext.FindMatch(p.env.Schema.TableNames(), tok.Literal); hint != "" {
		d = d.WithDidYouMean(hint)
	}
	return d
}

func (p *Parser) unknownColumnErr(tok token.Token, table string) error {
	err := gqlerrors.ErrUnknownColumn.New(tok.Literal, "")
	d := gqlerrors.New(err, tok.Location)
	var candidates []string
	if table != "" {
		candidates = p.env.Schema.ColumnNames(table)
	} else {
		candidates = p.env.ScopeNames()
	}
	if hint := similartext.FindMatch(candidates, tok.Literal); hint != "" {
		d = d.WithDidYouMean(hint)
	}
	return d
}

// checkAllSameType implements check_all_values_are_same_type: every
// expression in exprs must carry the same (or Any-compatible) type;
// returns that common element type, or types.AnyType{} for an empty
// list. context names the construct for the error message (e.g. "IN",
// "ARRAY").
func checkAllSameType(context string, exprs []ast.Expression) (types.Type, error) {
	if len(exprs) == 0 {
		return types.AnyType{}, nil
	}
	t := exprs[0].ExprType()
	for _, e := range exprs[1:] {
		if !t.Equals(e.ExprType()) {
			return nil, gqlerrors.New(
				gqlerrors.ErrMixedTypesInList.New(context, t.Name(), e.ExprType().Name()), e.Location())
		}
	}
	return t, nil
}
