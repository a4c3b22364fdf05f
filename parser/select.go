package parser

import (
	"github.com/gqlengine/gql/ast"
	"github.com/gqlengine/gql/gqlerrors"
	"github.com/gqlengine/gql/plan"
	"github.com/gqlengine/gql/token"
	"github.com/gqlengine/gql/types"
)

// parseSelect parses a full SELECT query into a *plan.SelectQuery. The
// projection list is textually first but semantically needs the FROM
// clause's scope to resolve its column references, so this does one
// lookahead pass over the FROM/JOIN clause to populate scope, then
// rewinds to parse the projection list for real.
func (p *Parser) parseSelect() (ast.Query, error) {
	ctx := NewContext()
	p.advance() // consume SELECT

	distinct, distinctOn, err := p.parseDistinctClause(ctx)
	if err != nil {
		return nil, err
	}

	projStart := p.pos
	fromIdx := p.findTopLevelKeyword(p.pos, token.From)

	var tables []ast.TableSelection
	var joins []ast.Join
	if fromIdx >= 0 {
		p.pos = fromIdx
		tables, joins, err = p.parseFromClause(ctx)
		if err != nil {
			return nil, err
		}
	}
	afterFrom := p.pos

	p.pos = projStart
	projections, err := p.parseProjectionList(ctx)
	if err != nil {
		return nil, err
	}
	if fromIdx >= 0 {
		p.pos = afterFrom
	}

	q := plan.NewSelectQuery()
	q.Statements[plan.ClauseSelect] = &ast.SelectStatement{
		Tables: tables, Joins: joins, Projections: projections,
		Distinct: distinct, DistinctOn: distinctOn,
	}

	seen := map[string]bool{}
	requireOnce := func(clause string, loc token.SourceLocation) error {
		if seen[clause] {
			return gqlerrors.New(gqlerrors.ErrClauseDefinedTwice.New(clause), loc)
		}
		seen[clause] = true
		return nil
	}

	for {
		tok := p.current()
		switch tok.Kind {
		case token.Where:
			if err := requireOnce(plan.ClauseWhere, tok.Location); err != nil {
				return nil, err
			}
			p.advance()
			pred, err := p.parseExpression(ctx)
			if err != nil {
				return nil, err
			}
			if !types.Bool.Equals(pred.ExprType()) {
				return nil, gqlerrors.New(
					gqlerrors.ErrOperatorNotSupported.New("WHERE", pred.ExprType().Name(), types.Bool.Name()), pred.Location())
			}
			q.Statements[plan.ClauseWhere] = &ast.WhereStatement{Predicate: pred}

		case token.Group:
			if err := requireOnce(plan.ClauseGroup, tok.Location); err != nil {
				return nil, err
			}
			p.advance()
			if _, err := p.expect(token.By); err != nil {
				return nil, err
			}
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
			rollup := false
			if p.match(token.With) {
				if _, err := p.expect(token.Rollup); err != nil {
					return nil, err
				}
				rollup = true
			}
			q.Statements[plan.ClauseGroup] = &ast.GroupByStatement{Exprs: exprs, WithRollup: rollup}
			q.HasGroupBy = true
			ctx.HasGroupByStatement = true

		case token.Having:
			if err := requireOnce(plan.ClauseHaving, tok.Location); err != nil {
				return nil, err
			}
			if !ctx.HasGroupByStatement {
				return nil, gqlerrors.New(gqlerrors.ErrHavingWithoutGroupBy.New(), tok.Location)
			}
			p.advance()
			prevHaving := ctx.InsideHaving
			ctx.InsideHaving = true
			pred, err := p.parseExpression(ctx)
			ctx.InsideHaving = prevHaving
			if err != nil {
				return nil, err
			}
			q.Statements[plan.ClauseHaving] = &ast.HavingStatement{Predicate: pred}

		case token.Qualify:
			if err := requireOnce(plan.ClauseQualify, tok.Location); err != nil {
				return nil, err
			}
			p.advance()
			pred, err := p.parseExpression(ctx)
			if err != nil {
				return nil, err
			}
			q.Statements[plan.ClauseQualify] = &ast.QualifyStatement{Predicate: pred}

		case token.Window:
			if err := requireOnce("window", tok.Location); err != nil {
				return nil, err
			}
			p.advance()
			for {
				name, err := p.expect(token.Symbol)
				if err != nil {
					return nil, err
				}
				if _, err := p.expect(token.As); err != nil {
					return nil, err
				}
				def, err := p.parseWindowDefParenBody(ctx)
				if err != nil {
					return nil, err
				}
				ctx.NamedWindows[name.Literal] = def
				if !p.match(token.Comma) {
					break
				}
			}

		case token.Order:
			if err := requireOnce(plan.ClauseOrder, tok.Location); err != nil {
				return nil, err
			}
			p.advance()
			if _, err := p.expect(token.By); err != nil {
				return nil, err
			}
			var terms []ast.OrderTerm
			for {
				term, err := p.parseOrderTerm(ctx)
				if err != nil {
					return nil, err
				}
				if sym, ok := term.Expr.(*ast.SymbolExpr); ok {
					ctx.AddHiddenSelection(p.tableForColumn(ctx, sym.Name), sym.Name)
				}
				terms = append(terms, term)
				if !p.match(token.Comma) {
					break
				}
			}
			q.Statements[plan.ClauseOrder] = &ast.OrderByStatement{Terms: terms}

		case token.Limit:
			if err := requireOnce(plan.ClauseLimit, tok.Location); err != nil {
				return nil, err
			}
			p.advance()
			count, err := p.parseExpression(ctx)
			if err != nil {
				return nil, err
			}
			var offset ast.Expression
			if p.match(token.Comma) {
				offset, err = p.parseExpression(ctx)
				if err != nil {
					return nil, err
				}
			}
			q.Statements[plan.ClauseLimit] = &ast.LimitStatement{Count: count, Offset: offset}

		case token.Offset:
			if err := requireOnce(plan.ClauseOffset, tok.Location); err != nil {
				return nil, err
			}
			p.advance()
			count, err := p.parseExpression(ctx)
			if err != nil {
				return nil, err
			}
			q.Statements[plan.ClauseOffset] = &ast.OffsetStatement{Count: count}

		case token.Into:
			if err := requireOnce(plan.ClauseInto, tok.Location); err != nil {
				return nil, err
			}
			into, err := p.parseIntoClause()
			if err != nil {
				return nil, err
			}
			q.Statements[plan.ClauseInto] = into

		default:
			goto done
		}
	}
done:

	if len(ctx.Aggregations) > 0 {
		q.Statements[plan.ClauseAggregation] = &ast.AggregationsStatement{Aggregations: ctx.Aggregations}
		q.HasAggregation = true
	}
	if err := p.resolveNamedWindowRefs(ctx); err != nil {
		return nil, err
	}
	if len(ctx.WindowCalls) > 0 {
		q.Statements[plan.ClauseWindowFunctions] = &ast.WindowFunctionsStatement{Calls: ctx.WindowCalls}
	}

	q.HiddenSelections = ctx.HiddenSelections
	q.Aliases = ctx.Aliases
	p.attachColumnsToTables(q, ctx)

	return q, nil
}

func (p *Parser) resolveNamedWindowRefs(ctx *Context) error {
	for hidden, name := range ctx.PendingNamedWindowRefs {
		def, ok := ctx.NamedWindows[name]
		if !ok {
			return gqlerrors.New(gqlerrors.ErrUnexpectedToken.New("a declared WINDOW name", name), token.SourceLocation{})
		}
		call := ctx.WindowCalls[hidden]
		call.Def = def
		ctx.WindowCalls[hidden] = call
	}
	return nil
}

// attachColumnsToTables fills each TableSelection's Columns with the real
// projected columns plus any hidden ones recorded for that table.
func (p *Parser) attachColumnsToTables(q *plan.SelectQuery, ctx *Context) {
	sel := q.Select()
	for i := range sel.Tables {
		t := &sel.Tables[i]
		key := t.Alias
		if key == "" {
			key = t.Table
		}
		seen := map[string]bool{}
		var cols []string
		for name := range ctx.SelectedColumns {
			if p.env.Schema.HasColumn(t.Table, name) && !seen[name] {
				cols = append(cols, name)
				seen[name] = true
			}
		}
		for _, name := range ctx.HiddenSelections[key] {
			if !seen[name] {
				cols = append(cols, name)
				seen[name] = true
			}
		}
		t.Columns = cols
	}
}

// tableForColumn finds which selected table owns column, for hidden
// selection bookkeeping; returns the first selected table that has the
// column, or "" if none does (the column reference will itself have
// failed to resolve in that case).
func (p *Parser) tableForColumn(ctx *Context, column string) string {
	for _, t := range ctx.SelectedTables {
		if p.env.Schema.HasColumn(t, column) {
			return t
		}
	}
	return ""
}

// findTopLevelKeyword scans forward from start for the first occurrence
// of any of kinds at paren-depth 0, stopping at EOF/Semicolon. Returns -1
// if none is found before the query ends.
func (p *Parser) findTopLevelKeyword(start int, kinds ...token.Kind) int {
	depth := 0
	for i := start; i < len(p.tokens); i++ {
		k := p.tokens[i].Kind
		switch k {
		case token.LeftParen:
			depth++
			continue
		case token.RightParen:
			depth--
			continue
		case token.EOF, token.Semicolon:
			return -1
		}
		if depth != 0 {
			continue
		}
		for _, want := range kinds {
			if k == want {
				return i
			}
		}
	}
	return -1
}

var projectionStopKinds = []token.Kind{
	token.From, token.Where, token.Group, token.Having, token.Qualify,
	token.Window, token.Order, token.Limit, token.Offset, token.Into,
	token.Semicolon, token.EOF,
}

func isProjectionStop(k token.Kind) bool {
	for _, s := range projectionStopKinds {
		if k == s {
			return true
		}
	}
	return false
}

func (p *Parser) parseDistinctClause(ctx *Context) (ast.Distinct, []string, error) {
	if !p.match(token.Distinct) {
		return ast.DistinctNone, nil, nil
	}
	if !p.match(token.On) {
		return ast.DistinctAll, nil, nil
	}
	if _, err := p.expect(token.LeftParen); err != nil {
		return ast.DistinctNone, nil, err
	}
	var cols []string
	for {
		name, err := p.expect(token.Symbol)
		if err != nil {
			return ast.DistinctNone, nil, err
		}
		cols = append(cols, name.Literal)
		if !p.match(token.Comma) {
			break
		}
	}
	if _, err := p.expect(token.RightParen); err != nil {
		return ast.DistinctNone, nil, err
	}
	return ast.DistinctOn, cols, nil
}

func (p *Parser) parseProjectionList(ctx *Context) ([]ast.ProjectionItem, error) {
	var items []ast.ProjectionItem
	for {
		if isProjectionStop(p.current().Kind) {
			break
		}
		e, err := p.parseExpression(ctx)
		if err != nil {
			return nil, err
		}
		title := defaultProjectionTitle(e)
		if p.match(token.As) {
			name, err := p.expect(token.Symbol)
			if err != nil {
				return nil, err
			}
			title = name.Literal
		}
		items = append(items, ast.ProjectionItem{Expr: e, Title: title})
		if !p.match(token.Comma) {
			break
		}
	}
	return items, nil
}

func defaultProjectionTitle(e ast.Expression) string {
	switch v := e.(type) {
	case *ast.SymbolExpr:
		return v.Name
	case *ast.GlobalVariableExpr:
		return "@" + v.Name
	case *ast.CallExpr:
		return v.Name
	default:
		return e.ExprType().Name()
	}
}

// parseFromClause parses `FROM table [AS alias] (join)*`, registering
// every table's columns into scope (both bare and, via a CompositeType
// entry keyed by table/alias, dotted) as it goes.
func (p *Parser) parseFromClause(ctx *Context) ([]ast.TableSelection, []ast.Join, error) {
	if _, err := p.expect(token.From); err != nil {
		return nil, nil, err
	}
	table, alias, err := p.parseTableRef()
	if err != nil {
		return nil, nil, err
	}
	if err := p.registerTableScope(ctx, table, alias); err != nil {
		return nil, nil, err
	}
	tables := []ast.TableSelection{{Table: table, Alias: alias}}
	leftKey := effectiveName(table, alias)

	var joins []ast.Join
	first := true
	for {
		kind, ok := p.matchJoinKind()
		if !ok {
			break
		}
		if _, err := p.expect(token.Join); err != nil {
			return nil, nil, err
		}
		rTable, rAlias, err := p.parseTableRef()
		if err != nil {
			return nil, nil, err
		}
		if err := p.registerTableScope(ctx, rTable, rAlias); err != nil {
			return nil, nil, err
		}
		rightKey := effectiveName(rTable, rAlias)
		tables = append(tables, ast.TableSelection{Table: rTable, Alias: rAlias})

		var on ast.Expression
		if p.match(token.On) {
			on, err = p.parseExpression(ctx)
			if err != nil {
				return nil, nil, err
			}
			if !types.Bool.Equals(on.ExprType()) {
				return nil, nil, gqlerrors.New(
					gqlerrors.ErrOperatorNotSupported.New("ON", on.ExprType().Name(), types.Bool.Name()), on.Location())
			}
		}
		joins = append(joins, ast.Join{Kind: kind, Left: leftKey, Right: rightKey, On: on, First: first})
		first = false
		leftKey = rightKey
	}
	return tables, joins, nil
}

func (p *Parser) matchJoinKind() (ast.JoinKind, bool) {
	switch {
	case p.check(token.Join):
		return ast.JoinInner, true
	case p.check(token.Inner):
		p.advance()
		return ast.JoinInner, true
	case p.check(token.Left):
		p.advance()
		p.match(token.Outer)
		return ast.JoinLeft, true
	case p.check(token.Right):
		p.advance()
		p.match(token.Outer)
		return ast.JoinRight, true
	case p.check(token.Cross):
		p.advance()
		return ast.JoinCross, true
	case p.check(token.Outer):
		p.advance()
		return ast.JoinOuter, true
	default:
		return ast.JoinInner, false
	}
}

func (p *Parser) parseTableRef() (table, alias string, err error) {
	name, err := p.expect(token.Symbol)
	if err != nil {
		return "", "", err
	}
	if !p.env.Schema.HasTable(name.Literal) {
		return "", "", p.unknownTableErr(name)
	}
	table = name.Literal
	if p.match(token.As) {
		a, err := p.expect(token.Symbol)
		if err != nil {
			return "", "", err
		}
		alias = a.Literal
	} else if p.check(token.Symbol) {
		a := p.advance()
		alias = a.Literal
	}
	return table, alias, nil
}

func effectiveName(table, alias string) string {
	if alias != "" {
		return alias
	}
	return table
}

// registerTableScope binds table's columns into the parse-time scope: a
// bare name per column (last table registered wins on a collision, the
// unqualified-reference simplification this engine accepts) and a
// CompositeType entry keyed by the table/alias name for `alias.column`
// member access.
func (p *Parser) registerTableScope(ctx *Context, table, alias string) error {
	key := effectiveName(table, alias)
	ctx.SelectedTables = append(ctx.SelectedTables, key)
	ctx.Aliases[key] = table

	members := map[string]types.Type{}
	for _, col := range p.env.Schema.ColumnNames(table) {
		t, ok := p.env.Schema.Columns[table][col]
		if !ok {
			continue
		}
		members[col] = t
		p.env.DefineScope(col, t)
	}
	p.env.DefineScope(key, types.CompositeType{TypeName: key, Members: members})
	return nil
}

// parseWindowDefParenBody parses a parenthesized `( [PARTITION BY ...]
// [ORDER BY ...] )` window definition body, used both by a named WINDOW
// clause and inline `OVER (...)`.
func (p *Parser) parseWindowDefParenBody(ctx *Context) (ast.WindowDef, error) {
	if _, err := p.expect(token.LeftParen); err != nil {
		return ast.WindowDef{}, err
	}
	var def ast.WindowDef
	if p.match(token.Partition) {
		if _, err := p.expect(token.By); err != nil {
			return ast.WindowDef{}, err
		}
		for {
			e, err := p.parseExpression(ctx)
			if err != nil {
				return ast.WindowDef{}, err
			}
			def.PartitionBy = append(def.PartitionBy, e)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if p.match(token.Order) {
		if _, err := p.expect(token.By); err != nil {
			return ast.WindowDef{}, err
		}
		for {
			term, err := p.parseOrderTerm(ctx)
			if err != nil {
				return ast.WindowDef{}, err
			}
			def.OrderBy = append(def.OrderBy, term)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if _, err := p.expect(token.RightParen); err != nil {
		return ast.WindowDef{}, err
	}
	return def, nil
}

func (p *Parser) parseIntoClause() (*ast.IntoStatement, error) {
	p.advance() // consume INTO
	kind := ast.IntoOutfile
	if p.match(token.Dumpfile) {
		kind = ast.IntoDumpfile
	} else if _, err := p.expect(token.Outfile); err != nil {
		return nil, err
	}
	path, err := p.expect(token.String)
	if err != nil {
		return nil, err
	}
	into := &ast.IntoStatement{Kind: kind, Path: path.Literal}
	if kind == ast.IntoDumpfile {
		return into, nil
	}
	for {
		switch {
		case p.check(token.Lines):
			p.advance()
			if _, err := p.expect(token.Terminated); err != nil {
				return nil, err
			}
			if _, err := p.expect(token.By); err != nil {
				return nil, err
			}
			v, err := p.expect(token.String)
			if err != nil {
				return nil, err
			}
			into.LinesTerminatedBy = v.Literal
		case p.check(token.Fields):
			p.advance()
			if _, err := p.expect(token.Terminated); err != nil {
				return nil, err
			}
			if _, err := p.expect(token.By); err != nil {
				return nil, err
			}
			v, err := p.expect(token.String)
			if err != nil {
				return nil, err
			}
			into.FieldsTerminatedBy = v.Literal
		case p.check(token.Enclosed):
			p.advance()
			if _, err := p.expect(token.By); err != nil {
				return nil, err
			}
			v, err := p.expect(token.String)
			if err != nil {
				return nil, err
			}
			into.Enclosed = v.Literal
		default:
			return into, nil
		}
	}
}
