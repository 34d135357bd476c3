package serializer

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"text/tabwriter"
)

type tableRow struct {
	key   string
	value string
}

// writeTable prints data as FIELD/VALUE rows with flattened keys such as
// "Violations[0].Message". Embedded structs contribute their fields directly.
func writeTable(w io.Writer, data any) error {
	rows := flatten("", reflect.ValueOf(data), nil)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	if len(rows) == 0 {
		fmt.Fprintln(tw, "<empty>\t")
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r.key, r.value)
	}
	return tw.Flush()
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func flatten(prefix string, v reflect.Value, rows []tableRow) []tableRow {
	if !v.IsValid() {
		return append(rows, tableRow{prefix, "<nil>"})
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return append(rows, tableRow{prefix, "<nil>"})
		}
		return flatten(prefix, v.Elem(), rows)

	case reflect.Struct:
		if s, ok := v.Interface().(fmt.Stringer); ok {
			return append(rows, tableRow{prefix, s.String()})
		}
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			key := prefix
			if !f.Anonymous {
				key = joinKey(prefix, f.Name)
			}
			rows = flatten(key, v.Field(i), rows)
		}
		return rows

	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
			return append(rows, tableRow{prefix, string(v.Bytes())})
		}
		if v.Len() == 0 {
			if prefix == "" {
				return rows
			}
			return append(rows, tableRow{prefix, "[]"})
		}
		for i := 0; i < v.Len(); i++ {
			rows = flatten(fmt.Sprintf("%s[%d]", prefix, i), v.Index(i), rows)
		}
		return rows

	case reflect.Map:
		if v.Len() == 0 {
			if prefix == "" {
				return rows
			}
			return append(rows, tableRow{prefix, "{}"})
		}
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, k := range keys {
			rows = flatten(joinKey(prefix, fmt.Sprint(k.Interface())), v.MapIndex(k), rows)
		}
		return rows

	default:
		return append(rows, tableRow{prefix, fmt.Sprint(v.Interface())})
	}
}
