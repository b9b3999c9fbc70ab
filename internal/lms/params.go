package lms

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
)

// Params are the arguments of one web-service function.
//
// Values may be scalars, slices of scalars or slices of records
// (map[string]any / Params). The web service reads arguments positionally,
// so slices are encoded as key[i] and records as key[i][field].
type Params map[string]any

func (p Params) encode(dst url.Values) error {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := p[k]
		if v == nil {
			continue
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			s, err := scalar(v)
			if err != nil {
				return fmt.Errorf("param %s: %w", k, err)
			}
			dst.Set(k, s)
			continue
		}
		for i := 0; i < rv.Len(); i++ {
			el := rv.Index(i).Interface()
			if rec, ok := asRecord(el); ok {
				if err := encodeRecord(dst, fmt.Sprintf("%s[%d]", k, i), rec); err != nil {
					return err
				}
				continue
			}
			s, err := scalar(el)
			if err != nil {
				return fmt.Errorf("param %s[%d]: %w", k, i, err)
			}
			dst.Set(fmt.Sprintf("%s[%d]", k, i), s)
		}
	}
	return nil
}

func encodeRecord(dst url.Values, prefix string, rec map[string]any) error {
	fields := make([]string, 0, len(rec))
	for f := range rec {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		if rec[f] == nil {
			continue
		}
		s, err := scalar(rec[f])
		if err != nil {
			return fmt.Errorf("param %s[%s]: %w", prefix, f, err)
		}
		dst.Set(fmt.Sprintf("%s[%s]", prefix, f), s)
	}
	return nil
}

func asRecord(v any) (map[string]any, bool) {
	switch r := v.(type) {
	case map[string]any:
		return r, true
	case Params:
		return r, true
	}
	return nil, false
}

func scalar(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		if x {
			return "1", nil
		}
		return "0", nil
	case int:
		return strconv.Itoa(x), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case Int:
		return strconv.FormatInt(int64(x), 10), nil
	case uint:
		return strconv.FormatUint(uint64(x), 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case fmt.Stringer:
		return x.String(), nil
	}
	return "", fmt.Errorf("unsupported value type %T", v)
}
