package cursor

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind tags a stored form value so it can be decoded without guessing.
type Kind string

const (
	KindNull     Kind = "null"
	KindString   Kind = "string"
	KindInt      Kind = "int"
	KindFloat    Kind = "float"
	KindBool     Kind = "bool"
	KindDate     Kind = "date"
	KindDateTime Kind = "datetime"
	KindRef      Kind = "ref"
	KindRefList  Kind = "ref_list"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = time.RFC3339
)

// Value is a primitive-serializable form value. Records are stored by id,
// collections of records as a list of ids.
type Value struct {
	Kind Kind     `json:"k"`
	Text string   `json:"v,omitempty"`
	List []string `json:"l,omitempty"`
}

func Null() Value { return Value{Kind: KindNull} }

func String(s string) Value { return Value{Kind: KindString, Text: s} }

func Int(i int64) Value { return Value{Kind: KindInt, Text: strconv.FormatInt(i, 10)} }

func Float(f float64) Value {
	return Value{Kind: KindFloat, Text: strconv.FormatFloat(f, 'f', -1, 64)}
}

func Bool(b bool) Value { return Value{Kind: KindBool, Text: strconv.FormatBool(b)} }

func Date(t time.Time) Value { return Value{Kind: KindDate, Text: t.Format(dateLayout)} }

func DateTime(t time.Time) Value {
	return Value{Kind: KindDateTime, Text: t.UTC().Format(dateTimeLayout)}
}

func Ref(id string) Value { return Value{Kind: KindRef, Text: id} }

func RefList(ids []string) Value {
	list := make([]string, len(ids))
	copy(list, ids)
	return Value{Kind: KindRefList, List: list}
}

// Parse converts raw chat input into a value of the given kind.
func Parse(kind Kind, raw string) (Value, error) {
	raw = strings.TrimSpace(raw)
	switch kind {
	case KindString, "":
		return String(raw), nil
	case KindNull:
		return Null(), nil
	case KindInt:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("enter a whole number")
		}
		return Int(i), nil
	case KindFloat:
		f, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
		if err != nil {
			return Value{}, fmt.Errorf("enter a number")
		}
		return Float(f), nil
	case KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return Value{}, fmt.Errorf("enter true or false")
		}
		return Bool(b), nil
	case KindDate:
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return Value{}, fmt.Errorf("enter a date as YYYY-MM-DD")
		}
		return Date(t), nil
	case KindDateTime:
		t, err := time.Parse(dateTimeLayout, raw)
		if err != nil {
			return Value{}, fmt.Errorf("enter a date and time as RFC 3339")
		}
		return DateTime(t), nil
	case KindRef:
		return Ref(raw), nil
	case KindRefList:
		return RefList(SplitList(raw)), nil
	}
	return Value{}, fmt.Errorf("unknown value kind %q", kind)
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (v Value) IsNull() bool {
	return v.Kind == KindNull || v.Kind == ""
}

// IsEmpty reports a null value, a blank string or an empty list.
func (v Value) IsEmpty() bool {
	if v.IsNull() {
		return true
	}
	if v.Kind == KindRefList {
		return len(v.List) == 0
	}
	return v.Text == ""
}

// String returns the canonical text form; lists are comma joined.
func (v Value) String() string {
	if v.Kind == KindRefList {
		return strings.Join(v.List, ",")
	}
	return v.Text
}

func (v Value) AsInt() (int64, error) {
	if v.IsNull() {
		return 0, nil
	}
	return strconv.ParseInt(v.Text, 10, 64)
}

func (v Value) AsFloat() (float64, error) {
	if v.IsNull() {
		return 0, nil
	}
	return strconv.ParseFloat(v.Text, 64)
}

func (v Value) AsBool() (bool, error) {
	if v.IsNull() {
		return false, nil
	}
	return strconv.ParseBool(v.Text)
}

func (v Value) AsTime() (time.Time, error) {
	switch v.Kind {
	case KindDate:
		return time.Parse(dateLayout, v.Text)
	case KindDateTime:
		return time.Parse(dateTimeLayout, v.Text)
	}
	return time.Time{}, fmt.Errorf("value of kind %q is not a time", v.Kind)
}

// Items returns the list of a ref-list value, or the single ref/text as a
// one element list.
func (v Value) Items() []string {
	if v.Kind == KindRefList {
		return append([]string(nil), v.List...)
	}
	if v.IsEmpty() {
		return nil
	}
	return []string{v.Text}
}

func (v Value) Equal(o Value) bool {
	if v.IsNull() && o.IsNull() {
		return true
	}
	if v.Kind != o.Kind || v.Text != o.Text || len(v.List) != len(o.List) {
		return false
	}
	for i := range v.List {
		if v.List[i] != o.List[i] {
			return false
		}
	}
	return true
}
