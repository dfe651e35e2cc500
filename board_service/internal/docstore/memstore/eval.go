package memstore

import (
	"strings"

	"jobboard/board_service/internal/docstore"
)

func (s *Store) eval(d docstore.Document, e docstore.Expr, params docstore.Params) bool {
	switch x := e.(type) {
	case docstore.And:
		for _, sub := range x {
			if !s.eval(d, sub, params) {
				return false
			}
		}
		return true
	case docstore.Or:
		for _, sub := range x {
			if s.eval(d, sub, params) {
				return true
			}
		}
		return false
	case docstore.Not:
		return !s.eval(d, x.X, params)
	case docstore.Cmp:
		v := s.resolve(d, mustPath(x.Field))
		c, ok := docstore.Compare(v, params[x.Param])
		if !ok {
			return false
		}
		switch x.Op {
		case docstore.OpEq:
			return c == 0
		case docstore.OpNe:
			return c != 0
		case docstore.OpGt:
			return c > 0
		case docstore.OpGte:
			return c >= 0
		case docstore.OpLt:
			return c < 0
		case docstore.OpLte:
			return c <= 0
		}
		return false
	case docstore.Match:
		v, ok := s.resolve(d, mustPath(x.Field)).(string)
		if !ok {
			return false
		}
		pattern, _ := params[x.Param].(string)
		return docstore.WildcardMatch(pattern, v)
	case docstore.Defined:
		return s.resolve(d, mustPath(x.Field)) != nil
	case docstore.In:
		v, ok := s.resolve(d, mustPath(x.Field)).(string)
		if !ok {
			return false
		}
		list, _ := params[x.Param].([]string)
		for _, candidate := range list {
			if candidate == v {
				return true
			}
		}
		return false
	}
	return false
}

// resolve достаёт значение поля, разыменовывая ссылку при необходимости
func (s *Store) resolve(d docstore.Document, p docstore.Path) any {
	if p.Ref != "" {
		id, ok := d.Fields[p.Ref].(string)
		if !ok {
			return nil
		}
		target, ok := s.docs[id]
		if !ok {
			return nil
		}
		d = target
	}

	if len(p.Segments) == 1 && strings.HasPrefix(p.Segments[0], "_") {
		switch p.Segments[0] {
		case "_id":
			return d.ID
		case "_createdAt":
			return docstore.FormatTime(d.CreatedAt)
		case "_updatedAt":
			return docstore.FormatTime(d.UpdatedAt)
		}
	}

	v, _ := docstore.Lookup(d.Fields, p.Segments)
	return v
}

// пути уже проверены Query.Validate
func mustPath(field string) docstore.Path {
	p, _ := docstore.ParsePath(field)
	return p
}

// compareForOrder: отсутствующие значения в конце при любом направлении,
// разные типы упорядочены как в jsonb (string < number < boolean)
func compareForOrder(a, b any, desc bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}

	c, ok := docstore.Compare(a, b)
	if !ok {
		c = typeRank(a) - typeRank(b)
	}
	if desc {
		return -c
	}
	return c
}

func typeRank(v any) int {
	switch v.(type) {
	case string:
		return 1
	case float64:
		return 2
	case bool:
		return 3
	case []any:
		return 4
	case map[string]any:
		return 5
	}
	return 0
}

func cloneDocument(d docstore.Document) docstore.Document {
	d.Fields = cloneValue(d.Fields).(map[string]any)
	d.Refs = nil
	return d
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, sub := range x {
			out[k] = cloneValue(sub)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, sub := range x {
			out[i] = cloneValue(sub)
		}
		return out
	}
	return v
}
