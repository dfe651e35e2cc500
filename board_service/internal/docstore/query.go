package docstore

import (
	"fmt"
	"strings"
)

// Params - именованные параметры запроса; значения только привязываются, в текст запроса не попадают
type Params map[string]any

// Query - декларативный запрос по одному типу документов: фильтр, сортировка, срез, проекция
type Query struct {
	Type   string
	Filter Expr // nil - все документы типа
	Order  []Order
	Offset int
	Limit  int // 0 - без ограничения
	Params Params

	// ссылочные поля, чьи документы вернутся в Document.Refs
	Expand []string
}

// Order - ключ сортировки; отсутствующие значения всегда в конце
type Order struct {
	Field string
	Desc  bool
}

// Expr - булево выражение над полями документа
type Expr interface {
	expr()
}

type Op string

const (
	OpEq  Op = "=="
	OpNe  Op = "!="
	OpGt  Op = ">"
	OpGte Op = ">="
	OpLt  Op = "<"
	OpLte Op = "<="
)

// And истинно, когда истинны все операнды; пустой And истинен
type And []Expr

// Or истинно, когда истинен хоть один операнд; пустой Or ложен
type Or []Expr

type Not struct{ X Expr }

// Cmp сравнивает поле с параметром; отсутствующее поле никогда не даёт true
type Cmp struct {
	Field string
	Op    Op
	Param string
}

// Match - сравнение по шаблону без учёта регистра, '*' - любая последовательность символов
type Match struct {
	Field string
	Param string
}

// Defined - поле есть и не null
type Defined struct{ Field string }

// In - поле равно одному из значений параметра-списка ([]string)
type In struct {
	Field string
	Param string
}

func (And) expr()     {}
func (Or) expr()      {}
func (Not) expr()     {}
func (Cmp) expr()     {}
func (Match) expr()   {}
func (Defined) expr() {}
func (In) expr()      {}

func Eq(field, param string) Cmp  { return Cmp{Field: field, Op: OpEq, Param: param} }
func Gt(field, param string) Cmp  { return Cmp{Field: field, Op: OpGt, Param: param} }
func Gte(field, param string) Cmp { return Cmp{Field: field, Op: OpGte, Param: param} }

// Path - разобранный путь к полю. Ref задан при разыменовании ссылки:
// "company->name" даёт Ref "company", Segments ["name"]
type Path struct {
	Ref      string
	Segments []string
}

// ParsePath разбирает "a.b" и "ref->a.b"
func ParsePath(field string) (Path, error) {
	if field == "" {
		return Path{}, fmt.Errorf("%w: empty field", ErrInvalidQuery)
	}

	var p Path
	rest := field
	if idx := strings.Index(field, "->"); idx >= 0 {
		p.Ref = field[:idx]
		rest = field[idx+2:]
		if p.Ref == "" || strings.Contains(p.Ref, ".") || strings.Contains(rest, "->") {
			return Path{}, fmt.Errorf("%w: unsupported reference path %q", ErrInvalidQuery, field)
		}
	}

	for _, seg := range strings.Split(rest, ".") {
		if seg == "" {
			return Path{}, fmt.Errorf("%w: malformed field %q", ErrInvalidQuery, field)
		}
		p.Segments = append(p.Segments, seg)
	}
	return p, nil
}

// Validate проверяет корректность запроса и то, что все параметры привязаны
func (q Query) Validate() error {
	if q.Type == "" {
		return fmt.Errorf("%w: document type is required", ErrInvalidQuery)
	}
	if q.Offset < 0 || q.Limit < 0 {
		return fmt.Errorf("%w: negative offset or limit", ErrInvalidQuery)
	}
	for _, o := range q.Order {
		if _, err := ParsePath(o.Field); err != nil {
			return err
		}
	}
	for _, ref := range q.Expand {
		if ref == "" || strings.Contains(ref, ".") || strings.Contains(ref, "->") {
			return fmt.Errorf("%w: bad expand field %q", ErrInvalidQuery, ref)
		}
	}
	return validateExpr(q.Filter, q.Params)
}

func validateExpr(e Expr, params Params) error {
	checkParam := func(name string) error {
		if _, ok := params[name]; !ok {
			return fmt.Errorf("%w: parameter $%s is not bound", ErrInvalidQuery, name)
		}
		return nil
	}

	switch x := e.(type) {
	case nil:
		return nil
	case And:
		for _, sub := range x {
			if err := validateExpr(sub, params); err != nil {
				return err
			}
		}
	case Or:
		for _, sub := range x {
			if err := validateExpr(sub, params); err != nil {
				return err
			}
		}
	case Not:
		return validateExpr(x.X, params)
	case Cmp:
		if _, err := ParsePath(x.Field); err != nil {
			return err
		}
		switch x.Op {
		case OpEq, OpNe, OpGt, OpGte, OpLt, OpLte:
		default:
			return fmt.Errorf("%w: unknown operator %q", ErrInvalidQuery, x.Op)
		}
		return checkParam(x.Param)
	case Match:
		if _, err := ParsePath(x.Field); err != nil {
			return err
		}
		if err := checkParam(x.Param); err != nil {
			return err
		}
		if _, ok := params[x.Param].(string); !ok {
			return fmt.Errorf("%w: match parameter $%s must be a string", ErrInvalidQuery, x.Param)
		}
	case Defined:
		_, err := ParsePath(x.Field)
		return err
	case In:
		if _, err := ParsePath(x.Field); err != nil {
			return err
		}
		if err := checkParam(x.Param); err != nil {
			return err
		}
		if _, ok := params[x.Param].([]string); !ok {
			return fmt.Errorf("%w: in parameter $%s must be []string", ErrInvalidQuery, x.Param)
		}
	default:
		return fmt.Errorf("%w: unsupported expression %T", ErrInvalidQuery, e)
	}
	return nil
}

// CountQuery - тот же предикат без сортировки, среза и проекции
func (q Query) CountQuery() Query {
	return Query{Type: q.Type, Filter: q.Filter, Params: q.Params}
}
