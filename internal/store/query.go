package store

import (
	"strconv"
	"strings"
)

// ListParams carries the caller-supplied refinements for a list operation:
// a free-text search term and a single ordering key ("-" prefix for
// descending). Visibility predicates (ownership, is_active) are applied by
// the store before these refinements and can never be widened by them.
type ListParams struct {
	Search  string
	OrderBy string
}

// Spec declares the queryable surface of one list endpoint: which columns
// the search term matches, which ordering keys are accepted and the column
// each maps to, the default ordering, and a unique tie-break column that
// keeps result order deterministic.
type Spec struct {
	SearchColumns []string
	OrderColumns  map[string]string
	DefaultOrder  string
	TieBreak      string
}

// QueryBuilder accumulates positional arguments for a hand-written SQL
// query. Arg registers a value and returns its placeholder, so conditions
// can be appended in any order without tracking indexes by hand.
type QueryBuilder struct {
	args []any
}

// NewQueryBuilder returns a QueryBuilder seeded with the arguments already
// present in the base query, if any.
func NewQueryBuilder(seed ...any) *QueryBuilder {
	return &QueryBuilder{args: seed}
}

// Arg registers a value and returns its positional placeholder ("$3").
func (b *QueryBuilder) Arg(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

// Args returns the accumulated argument slice in placeholder order.
func (b *QueryBuilder) Args() []any {
	return b.args
}

// SearchCondition builds a case-insensitive substring condition ORed
// across the spec's search columns. Returns an empty string when the term
// is empty or the spec declares no search columns.
func (s Spec) SearchCondition(qb *QueryBuilder, term string) string {
	if term == "" || len(s.SearchColumns) == 0 {
		return ""
	}

	arg := qb.Arg("%" + escapeLike(term) + "%")
	parts := make([]string, len(s.SearchColumns))
	for i, col := range s.SearchColumns {
		parts[i] = col + " ILIKE " + arg
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

// OrderClause builds the ORDER BY clause for the requested ordering key.
// Unknown keys fall back to the spec's default rather than erroring.
func (s Spec) OrderClause(requested string) string {
	col, desc := s.resolveOrder(requested)
	if col == "" {
		col, desc = s.resolveOrder(s.DefaultOrder)
	}
	if col == "" {
		return ""
	}

	dir := " ASC"
	if desc {
		dir = " DESC"
	}

	clause := " ORDER BY " + col + dir
	if s.TieBreak != "" && s.TieBreak != col {
		clause += ", " + s.TieBreak + " ASC"
	}
	return clause
}

func (s Spec) resolveOrder(key string) (column string, desc bool) {
	if key == "" {
		return "", false
	}
	desc = strings.HasPrefix(key, "-")
	key = strings.TrimPrefix(key, "-")
	column, ok := s.OrderColumns[key]
	if !ok {
		return "", false
	}
	return column, desc
}

// escapeLike escapes the LIKE metacharacters in a user-supplied search
// term so it matches literally.
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}

// AppendWhere joins accumulated conditions onto a base query. Conditions
// are ANDed; empty strings are skipped. The base query must not already
// contain a WHERE clause.
func AppendWhere(base string, conds []string) string {
	filtered := conds[:0:0]
	for _, c := range conds {
		if c != "" {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return base
	}
	return base + " WHERE " + strings.Join(filtered, " AND ")
}
