// Package querybuilder renders the small set of PostgreSQL statements the
// repositories issue, numbering placeholders as $1..$n in render order.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// compiler accumulates statement text and its positional arguments.
type compiler struct {
	sql  strings.Builder
	args []any
}

func (c *compiler) write(parts ...string) {
	for _, part := range parts {
		c.sql.WriteString(part)
	}
}

func (c *compiler) bind(value any) {
	c.args = append(c.args, value)
	c.sql.WriteString("$")
	c.sql.WriteString(strconv.Itoa(len(c.args)))
}

// fragment writes expr, binding one argument per "?". Surplus "?" are kept.
func (c *compiler) fragment(expr string, args []any) {
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && next < len(args) {
			c.bind(args[next])
			next++
			continue
		}
		c.sql.WriteByte(expr[i])
	}
}

func (c *compiler) where(conditions []Condition) {
	for i, cond := range conditions {
		if i == 0 {
			c.write(" WHERE ")
		} else {
			c.write(" AND ")
		}
		cond.compile(c)
	}
}

func (c *compiler) result() (string, []any, error) {
	return c.sql.String(), c.args, nil
}

type Condition interface {
	compile(c *compiler)
}

type comparison struct {
	column string
	op     string
	value  any
}

func (cmp comparison) compile(c *compiler) {
	c.write(cmp.column, " ", cmp.op, " ")
	c.bind(cmp.value)
}

func Eq(column string, value any) Condition {
	return comparison{column: column, op: "=", value: value}
}

func NotEq(column string, value any) Condition {
	return comparison{column: column, op: "<>", value: value}
}

type isNull string

func (col isNull) compile(c *compiler) {
	c.write(string(col), " IS NULL")
}

func IsNull(column string) Condition {
	return isNull(column)
}

type rawExpr struct {
	expr string
	args []any
}

func (e rawExpr) compile(c *compiler) {
	c.fragment(e.expr, e.args)
}

// Expr is a raw condition; each "?" in expr binds the next arg.
func Expr(expr string, args ...any) Condition {
	return rawExpr{expr: expr, args: args}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(columns ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, columns...)
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("select columns are required")
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("select table is required")
	}

	var c compiler
	c.write("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	c.where(b.where)
	if len(b.orderBy) > 0 {
		c.write(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	return c.result()
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix appends raw SQL such as an ON CONFLICT clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("insert table is required")
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("insert columns are required")
	case len(b.rows) == 0:
		return "", nil, fmt.Errorf("insert values are required")
	}

	var c compiler
	c.write("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", i, len(row), len(b.columns))
		}
		if i > 0 {
			c.write(", ")
		}
		c.write("(")
		for j, value := range row {
			if j > 0 {
				c.write(", ")
			}
			c.bind(value)
		}
		c.write(")")
	}
	if b.suffix != "" {
		c.write(" ", b.suffix)
	}
	return c.result()
}

type assignment struct {
	column string
	value  any
	expr   *rawExpr
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

// SetExpr assigns a raw SQL expression, e.g. NOW().
func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, expr: &rawExpr{expr: expr, args: args}})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("update table is required")
	case len(b.sets) == 0:
		return "", nil, fmt.Errorf("update sets are required")
	case len(b.where) == 0:
		return "", nil, fmt.Errorf("update conditions are required")
	}

	var c compiler
	c.write("UPDATE ", b.table, " SET ")
	for i, set := range b.sets {
		if i > 0 {
			c.write(", ")
		}
		c.write(set.column, " = ")
		if set.expr != nil {
			set.expr.compile(&c)
			continue
		}
		c.bind(set.value)
	}
	c.where(b.where)
	return c.result()
}
