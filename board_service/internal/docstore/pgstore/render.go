package pgstore

import (
	"encoding/json"
	"fmt"
	"strings"

	"jobboard/board_service/internal/docstore"
)

const documentColumns = "d.id, d.doc_type, d.seq, d.data, d.created_at, d.updated_at"

// formatPgTime совпадает с docstore.TimeLayout
const formatPgTime = `'YYYY-MM-DD"T"HH24:MI:SS.MS"Z"'`

// renderer собирает SQL; все значения, включая пути к полям, уходят в args
type renderer struct {
	params docstore.Params
	args   []any
}

func newRenderer(params docstore.Params) *renderer {
	normalized := make(docstore.Params, len(params))
	for k, v := range params {
		normalized[k] = docstore.NormalizeParam(v)
	}
	return &renderer{params: normalized}
}

func (r *renderer) bind(v any) string {
	r.args = append(r.args, v)
	return fmt.Sprintf("$%d", len(r.args))
}

// renderSelect - запрос страницы
func renderSelect(q docstore.Query) (string, []any, error) {
	if err := q.Validate(); err != nil {
		return "", nil, err
	}
	r := newRenderer(q.Params)

	var sb strings.Builder
	sb.WriteString("SELECT " + documentColumns + " FROM documents d WHERE d.doc_type = " + r.bind(q.Type))
	if q.Filter != nil {
		sb.WriteString(" AND " + r.expr(q.Filter))
	}

	sb.WriteString(" ORDER BY ")
	for _, o := range q.Order {
		p, _ := docstore.ParsePath(o.Field)
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		sb.WriteString("NULLIF(" + r.value("d", p) + ", 'null'::jsonb) " + dir + " NULLS LAST, ")
	}
	sb.WriteString("d.seq ASC")

	if q.Offset > 0 {
		sb.WriteString(" OFFSET " + r.bind(q.Offset))
	}
	if q.Limit > 0 {
		sb.WriteString(" LIMIT " + r.bind(q.Limit))
	}
	return sb.String(), r.args, nil
}

// renderCount - запрос количества с тем же предикатом
func renderCount(q docstore.Query) (string, []any, error) {
	q = q.CountQuery()
	if err := q.Validate(); err != nil {
		return "", nil, err
	}
	r := newRenderer(q.Params)

	sql := "SELECT count(*) FROM documents d WHERE d.doc_type = " + r.bind(q.Type)
	if q.Filter != nil {
		sql += " AND " + r.expr(q.Filter)
	}
	return sql, r.args, nil
}

func (r *renderer) expr(e docstore.Expr) string {
	switch x := e.(type) {
	case docstore.And:
		if len(x) == 0 {
			return "TRUE"
		}
		parts := make([]string, len(x))
		for i, sub := range x {
			parts[i] = r.expr(sub)
		}
		return "(" + strings.Join(parts, " AND ") + ")"
	case docstore.Or:
		if len(x) == 0 {
			return "FALSE"
		}
		parts := make([]string, len(x))
		for i, sub := range x {
			parts[i] = r.expr(sub)
		}
		return "(" + strings.Join(parts, " OR ") + ")"
	case docstore.Not:
		return "NOT " + r.expr(x.X)
	case docstore.Cmp:
		return r.cmp(x)
	case docstore.Match:
		v := r.value("d", mustPath(x.Field))
		pattern, _ := r.params[x.Param].(string)
		return "COALESCE(jsonb_typeof(" + v + ") = 'string' AND (" + v + " #>> '{}') ILIKE " +
			r.bind(likePattern(pattern)) + ", FALSE)"
	case docstore.Defined:
		v := r.value("d", mustPath(x.Field))
		return "COALESCE(jsonb_typeof(" + v + ") <> 'null', FALSE)"
	case docstore.In:
		v := r.value("d", mustPath(x.Field))
		list, _ := r.params[x.Param].([]string)
		return "COALESCE(jsonb_typeof(" + v + ") = 'string' AND (" + v + " #>> '{}') = ANY(" +
			r.bind(list) + "::text[]), FALSE)"
	}
	return "FALSE"
}

var sqlOps = map[docstore.Op]string{
	docstore.OpEq:  "=",
	docstore.OpNe:  "<>",
	docstore.OpGt:  ">",
	docstore.OpGte: ">=",
	docstore.OpLt:  "<",
	docstore.OpLte: "<=",
}

// cmp сравнивает только значения одного JSON-типа, как docstore.Compare
func (r *renderer) cmp(c docstore.Cmp) string {
	param := r.params[c.Param]
	typ := docstore.JSONType(param)
	if typ != "string" && typ != "number" && typ != "boolean" {
		return "FALSE"
	}
	raw, err := json.Marshal(param)
	if err != nil {
		return "FALSE"
	}

	v := r.value("d", mustPath(c.Field))
	return "COALESCE(jsonb_typeof(" + v + ") = '" + typ + "' AND " + v + " " + sqlOps[c.Op] + " " +
		r.bind(string(raw)) + "::jsonb, FALSE)"
}

// value - jsonb выражение для поля документа с алиасом alias
func (r *renderer) value(alias string, p docstore.Path) string {
	if p.Ref != "" {
		inner := r.value("r", docstore.Path{Segments: p.Segments})
		return "(SELECT " + inner + " FROM documents r WHERE r.id = " + alias + ".data ->> " + r.bind(p.Ref) + ")"
	}

	if len(p.Segments) == 1 {
		switch p.Segments[0] {
		case "_id":
			return "to_jsonb(" + alias + ".id)"
		case "_createdAt":
			return "to_jsonb(to_char(" + alias + ".created_at AT TIME ZONE 'UTC', " + formatPgTime + "))"
		case "_updatedAt":
			return "to_jsonb(to_char(" + alias + ".updated_at AT TIME ZONE 'UTC', " + formatPgTime + "))"
		}
	}
	return "(" + alias + ".data #> " + r.bind(p.Segments) + "::text[])"
}

// likePattern переводит шаблон с '*' в ILIKE, экранируя служебные символы
func likePattern(pattern string) string {
	var sb strings.Builder
	for _, ch := range pattern {
		switch ch {
		case '\\', '%', '_':
			sb.WriteRune('\\')
			sb.WriteRune(ch)
		case '*':
			sb.WriteRune('%')
		default:
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}

func mustPath(field string) docstore.Path {
	p, _ := docstore.ParsePath(field)
	return p
}
