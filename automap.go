package sqlbuilder

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/mitranim/refut"
)

type assignment struct {
	col string
	val any
}

// columnName is the db tag ident, or the field name when there is no tag.
// db:"-" yields "".
func columnName(sfield reflect.StructField) string {
	tag, ok := sfield.Tag.Lookup("db")
	if !ok {
		return sfield.Name
	}
	return refut.TagIdent(tag)
}

// structColumns lists the columns of a struct type in declaration order.
// Embedded structs are flattened.
func structColumns(typ reflect.Type) []string {
	if typ == nil {
		return nil
	}
	typ = refut.RtypeDeref(typ)
	if typ.Kind() != reflect.Struct {
		return nil
	}

	var cols []string
	_ = refut.TraverseStructRtype(typ, func(sfield reflect.StructField, _ []int) error {
		if col := columnName(sfield); col != "" {
			cols = append(cols, col)
		}
		return nil
	})
	return cols
}

// mapModel turns model into column assignments. Nil and zero-valued members
// are skipped.
func mapModel(model any) ([]assignment, error) {
	rval := reflect.ValueOf(model)
	if !rval.IsValid() || refut.IsRvalNil(rval) {
		return nil, nil
	}
	for rval.Kind() == reflect.Pointer {
		if rval.IsNil() {
			return nil, nil
		}
		rval = rval.Elem()
	}
	if rval.Kind() != reflect.Struct {
		return nil, fmt.Errorf("sqlbuilder: auto-map expects a struct, got %s", rval.Type())
	}

	var out []assignment
	err := refut.TraverseStructRval(rval, func(fval reflect.Value, sfield reflect.StructField, _ []int) error {
		col := columnName(sfield)
		if col == "" || !fval.IsValid() || fval.IsZero() {
			return nil
		}

		val, err := bindValue(fval.Interface())
		if err != nil {
			return fmt.Errorf("sqlbuilder: auto-map %s: %w", sfield.Name, err)
		}
		out = append(out, assignment{col: col, val: val})
		return nil
	})
	return out, err
}

// bindValue keeps simple values as they are and serializes the rest to JSON.
func bindValue(v any) (any, error) {
	switch v.(type) {
	case driver.Valuer, time.Time, []byte:
		return v, nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
		if vv, ok := rv.Interface().(driver.Valuer); ok {
			return vv, nil
		}
	}

	switch rv.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return rv.Interface(), nil
	}
	if t, ok := rv.Interface().(time.Time); ok {
		return t, nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
