package docstore

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// TimeLayout - фиксированная ширина, поэтому строковый порядок совпадает с хронологическим
const TimeLayout = "2006-01-02T15:04:05.000Z"

// FormatTime - представление времени в документах и параметрах
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime разбирает время, записанное FormatTime (или любым RFC3339)
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(TimeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

// Normalize приводит поля к JSON-совместимому виду, тем же, что вернёт хранилище при чтении:
// время в строку FormatTime, числа в float64, срезы в []any
func Normalize(fields map[string]any) (map[string]any, error) {
	walked := make(map[string]any, len(fields))
	for k, v := range fields {
		walked[k] = normalizeTimes(v)
	}

	raw, err := json.Marshal(walked)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document fields: %w", err)
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode document fields: %w", err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

func normalizeTimes(v any) any {
	switch x := v.(type) {
	case time.Time:
		return FormatTime(x)
	case *time.Time:
		if x == nil {
			return nil
		}
		return FormatTime(*x)
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, sub := range x {
			out[k] = normalizeTimes(sub)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, sub := range x {
			out[i] = normalizeTimes(sub)
		}
		return out
	default:
		return v
	}
}

// NormalizeParam приводит значение параметра к виду значений документа
func NormalizeParam(v any) any {
	switch x := v.(type) {
	case time.Time:
		return FormatTime(x)
	case *time.Time:
		if x == nil {
			return nil
		}
		return FormatTime(*x)
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	}

	// именованные типы (перечисления моделей) приводим к базовому виду
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Bool:
		return rv.Bool()
	}
	return v
}

// JSONType - имя JSON-типа значения в терминах jsonb_typeof
func JSONType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}

// Lookup достаёт значение по сегментам пути
func Lookup(fields map[string]any, segments []string) (any, bool) {
	var cur any = fields
	for _, seg := range segments {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Compare сравнивает два скалярных значения одного JSON-типа.
// ok=false, если значения несравнимы (разные типы, null, составные)
func Compare(a, b any) (int, bool) {
	switch x := a.(type) {
	case float64:
		y, ok := b.(float64)
		if !ok {
			return 0, false
		}
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
		return 0, true
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(x, y), true
	case bool:
		y, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case x == y:
			return 0, true
		case !x:
			return -1, true
		}
		return 1, true
	}
	return 0, false
}

// WildcardMatch - совпадение по шаблону без учёта регистра, '*' - любая последовательность
func WildcardMatch(pattern, s string) bool {
	pattern = strings.ToLower(pattern)
	s = strings.ToLower(s)

	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return pattern == s
	}

	if !strings.HasPrefix(s, parts[0]) {
		return false
	}
	s = s[len(parts[0]):]

	last := parts[len(parts)-1]
	for _, part := range parts[1 : len(parts)-1] {
		idx := strings.Index(s, part)
		if idx < 0 {
			return false
		}
		s = s[idx+len(part):]
	}
	return strings.HasSuffix(s, last)
}

// String, Float, Bool, Time, Strings - типизированный доступ к полям документа

func (d Document) String(field string) string {
	v, _ := d.value(field).(string)
	return v
}

func (d Document) Float(field string) float64 {
	v, _ := d.value(field).(float64)
	return v
}

func (d Document) Int(field string) int {
	return int(d.Float(field))
}

func (d Document) Bool(field string) bool {
	v, _ := d.value(field).(bool)
	return v
}

// Time возвращает nil, если поля нет или оно не разбирается
func (d Document) Time(field string) *time.Time {
	s, ok := d.value(field).(string)
	if !ok || s == "" {
		return nil
	}
	t, err := ParseTime(s)
	if err != nil {
		return nil
	}
	return &t
}

func (d Document) Strings(field string) []string {
	raw, _ := d.value(field).([]any)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Map - вложенный объект или nil
func (d Document) Map(field string) map[string]any {
	m, _ := d.value(field).(map[string]any)
	return m
}

// Has - поле есть и не null
func (d Document) Has(field string) bool {
	return d.value(field) != nil
}

// Ref - развёрнутый ссылочный документ
func (d Document) Ref(field string) (Document, bool) {
	r, ok := d.Refs[field]
	return r, ok
}

func (d Document) value(field string) any {
	v, _ := Lookup(d.Fields, strings.Split(field, "."))
	return v
}
