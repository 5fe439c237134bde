package postgresql

import (
	"strconv"
	"strings"
)

// SelectBuilder assembles a SELECT with positional arguments.
// `?` placeholders in Where become $n in the order they are added.
type SelectBuilder struct {
	columns []string
	table   string
	where   []string
	args    []any
	orderBy []string
	limit   *int
	offset  *int
}

// NewQueryBuilder starts an empty SELECT.
func NewQueryBuilder() *SelectBuilder {
	return &SelectBuilder{}
}

func (b *SelectBuilder) Select(columns ...string) *SelectBuilder {
	b.columns = append(b.columns, columns...)
	return b
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

// Where appends an AND condition.
func (b *SelectBuilder) Where(condition string, args ...any) *SelectBuilder {
	for _, arg := range args {
		b.args = append(b.args, arg)
		condition = strings.Replace(condition, "?", "$"+strconv.Itoa(len(b.args)), 1)
	}
	b.where = append(b.where, condition)
	return b
}

func (b *SelectBuilder) OrderBy(column string, desc ...bool) *SelectBuilder {
	dir := " ASC"
	if len(desc) > 0 && desc[0] {
		dir = " DESC"
	}
	b.orderBy = append(b.orderBy, column+dir)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = &limit
	return b
}

func (b *SelectBuilder) Offset(offset int) *SelectBuilder {
	b.offset = &offset
	return b
}

// Build renders the statement. It can be called more than once.
func (b *SelectBuilder) Build() (string, []any) {
	var sb strings.Builder

	sb.WriteString("SELECT ")
	if len(b.columns) == 0 {
		sb.WriteString("*")
	} else {
		sb.WriteString(strings.Join(b.columns, ", "))
	}
	if b.table != "" {
		sb.WriteString(" FROM ")
		sb.WriteString(b.table)
	}
	if len(b.where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.where, " AND "))
	}
	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}

	args := make([]any, 0, len(b.args)+2)
	args = append(args, b.args...)
	if b.limit != nil {
		args = append(args, *b.limit)
		sb.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	}
	if b.offset != nil {
		args = append(args, *b.offset)
		sb.WriteString(" OFFSET $" + strconv.Itoa(len(args)))
	}

	return sb.String(), args
}
