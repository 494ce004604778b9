package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// AnswerKind tags the variant held by an AnswerValue.
type AnswerKind int

const (
	KindEmpty AnswerKind = iota
	KindScalar
	KindNumeric
	KindList
	KindBlob
)

func (k AnswerKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindNumeric:
		return "numeric"
	case KindList:
		return "list"
	case KindBlob:
		return "blob"
	default:
		return "empty"
	}
}

// AnswerValue is the tagged union stored for one question.
// The zero value is Empty, so a missing map key reads as an absent answer.
type AnswerValue struct {
	kind AnswerKind
	str  string
	num  float64
	list []string
	blob map[string]any
}

func Empty() AnswerValue { return AnswerValue{} }

func Scalar(s string) AnswerValue { return AnswerValue{kind: KindScalar, str: s} }

func Numeric(f float64) AnswerValue { return AnswerValue{kind: KindNumeric, num: f} }

func List(items ...string) AnswerValue {
	cp := make([]string, len(items))
	copy(cp, items)
	return AnswerValue{kind: KindList, list: cp}
}

// Blob wraps structured payloads (file, photo, signature). The content is opaque to the engine.
func Blob(m map[string]any) AnswerValue {
	cp := make(map[string]any, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return AnswerValue{kind: KindBlob, blob: cp}
}

func (v AnswerValue) Kind() AnswerKind { return v.kind }

func (v AnswerValue) Str() (string, bool) { return v.str, v.kind == KindScalar }

func (v AnswerValue) Num() (float64, bool) { return v.num, v.kind == KindNumeric }

// Items returns a copy of the list variant.
func (v AnswerValue) Items() ([]string, bool) {
	if v.kind != KindList {
		return nil, false
	}
	cp := make([]string, len(v.list))
	copy(cp, v.list)
	return cp, true
}

func (v AnswerValue) Fields() (map[string]any, bool) {
	if v.kind != KindBlob {
		return nil, false
	}
	cp := make(map[string]any, len(v.blob))
	for k, val := range v.blob {
		cp[k] = val
	}
	return cp, true
}

// IsEmpty reports absent, "" or an empty list. Numeric zero and blobs are present.
func (v AnswerValue) IsEmpty() bool {
	switch v.kind {
	case KindEmpty:
		return true
	case KindScalar:
		return v.str == ""
	case KindList:
		return len(v.list) == 0
	default:
		return false
	}
}

// String renders the value the way it is compared as text: lists are comma
// joined, numbers use the shortest decimal form, blobs and absent values are "".
func (v AnswerValue) String() string {
	switch v.kind {
	case KindScalar:
		return v.str
	case KindNumeric:
		return cast.ToString(v.num)
	case KindList:
		return strings.Join(v.list, ",")
	default:
		return ""
	}
}

// Equal is variant-and-value equality. Blobs never compare equal.
func (v AnswerValue) Equal(o AnswerValue) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindEmpty:
		return true
	case KindScalar:
		return v.str == o.str
	case KindNumeric:
		return v.num == o.num
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != o.list[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindScalar:
		return json.Marshal(v.str)
	case KindNumeric:
		return json.Marshal(v.num)
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	case KindBlob:
		return json.Marshal(v.blob)
	default:
		return []byte("null"), nil
	}
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Empty()
		return nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := AnswerFromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// AnswerFromAny converts a decoded JSON value into an AnswerValue.
// Booleans become the scalars "true"/"false"; array elements are stringified.
func AnswerFromAny(raw any) (AnswerValue, error) {
	switch t := raw.(type) {
	case nil:
		return Empty(), nil
	case string:
		return Scalar(t), nil
	case bool:
		return Scalar(cast.ToString(t)), nil
	case float64:
		return Numeric(t), nil
	case int:
		return Numeric(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Empty(), err
		}
		return Numeric(f), nil
	case []string:
		return List(t...), nil
	case []any:
		items := make([]string, 0, len(t))
		for _, el := range t {
			if _, nested := el.(map[string]any); nested {
				return Empty(), errors.New("list answers must contain scalar elements")
			}
			items = append(items, cast.ToString(el))
		}
		return List(items...), nil
	case map[string]any:
		return Blob(t), nil
	default:
		return Empty(), fmt.Errorf("unsupported answer type %T", raw)
	}
}

// Answers maps question ids to their current values.
type Answers map[string]AnswerValue

// Get returns Empty for unanswered questions.
func (a Answers) Get(questionID string) AnswerValue {
	if a == nil {
		return Empty()
	}
	return a[questionID]
}

// Clone returns a snapshot safe to hand to the engine while the original keeps changing.
func (a Answers) Clone() Answers {
	cp := make(Answers, len(a))
	for k, v := range a {
		cp[k] = v
	}
	return cp
}

func (a Answers) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *Answers) Scan(src any) error {
	return scanJSON(src, a)
}

func scanJSON(src any, dst any) error {
	var data []byte
	switch t := src.(type) {
	case nil:
		return nil
	case []byte:
		data = t
	case string:
		data = []byte(t)
	default:
		return fmt.Errorf("cannot scan %T into %T", src, dst)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}
