package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel builds an INSERT from the db-tagged fields of model.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, err := modelColumns(model)
	if err != nil {
		return "", nil, err
	}

	names := make([]string, len(cols))
	values := make([]any, len(cols))
	for i, c := range cols {
		names[i], values[i] = c.name, c.value
	}
	return InsertInto(table).Columns(names...).Values(values...).Suffix(suffix).ToSQL()
}

// UpdateModel starts an UPDATE that sets every db-tagged field of model.
// Callers add expressions and the WHERE clause on the returned builder.
func UpdateModel(table string, model any) (*UpdateBuilder, error) {
	cols, err := modelColumns(model)
	if err != nil {
		return nil, err
	}

	b := Update(table)
	for _, c := range cols {
		b.Set(c.name, c.value)
	}
	return b, nil
}

type modelColumn struct {
	name  string
	value any
}

// modelColumns walks exported fields in declaration order, flattening
// embedded structs. Fields tagged "-" or untagged are skipped.
func modelColumns(model any) ([]modelColumn, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, fmt.Errorf("model cannot be nil")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model must be struct, got %s", v.Kind())
	}

	var out []modelColumn
	for _, f := range reflect.VisibleFields(v.Type()) {
		if f.Anonymous || !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		fv, err := v.FieldByIndexErr(f.Index)
		if err != nil {
			continue
		}
		out = append(out, modelColumn{name: name, value: fv.Interface()})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("model has no db columns")
	}
	return out, nil
}
