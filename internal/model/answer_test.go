package model

import (
	"encoding/json"
	"testing"
)

func TestAnswersUnmarshalVariants(t *testing.T) {
	raw := `{
		"name": "Ada",
		"age": 36,
		"tags": ["a", "b", 3],
		"consent": true,
		"photo": {"url": "/uploads/x.png", "size": 12},
		"skipped": null,
		"blank": ""
	}`

	var answers Answers
	if err := json.Unmarshal([]byte(raw), &answers); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	cases := []struct {
		id   string
		kind AnswerKind
		text string
	}{
		{"name", KindScalar, "Ada"},
		{"age", KindNumeric, "36"},
		{"tags", KindList, "a,b,3"},
		{"consent", KindScalar, "true"},
		{"photo", KindBlob, ""},
		{"skipped", KindEmpty, ""},
		{"blank", KindScalar, ""},
		{"missing", KindEmpty, ""},
	}
	for _, c := range cases {
		v := answers.Get(c.id)
		if v.Kind() != c.kind {
			t.Errorf("%s: kind=%s, want %s", c.id, v.Kind(), c.kind)
		}
		if v.String() != c.text {
			t.Errorf("%s: text=%q, want %q", c.id, v.String(), c.text)
		}
	}

	if fields, ok := answers.Get("photo").Fields(); !ok || fields["url"] != "/uploads/x.png" {
		t.Fatalf("blob fields lost: %v", fields)
	}
}

func TestAnswerValueRejectsNestedLists(t *testing.T) {
	var v AnswerValue
	if err := json.Unmarshal([]byte(`[{"a":1}]`), &v); err == nil {
		t.Fatal("expected error for list of objects")
	}
}

func TestAnswerValueMarshalKeepsShape(t *testing.T) {
	answers := Answers{
		"s": Scalar("x"),
		"n": Numeric(2.5),
		"l": List(),
		"e": Empty(),
	}
	b, err := json.Marshal(answers)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var generic map[string]any
	if err := json.Unmarshal(b, &generic); err != nil {
		t.Fatalf("unmarshal generic: %v", err)
	}
	if generic["s"] != "x" || generic["n"] != 2.5 || generic["e"] != nil {
		t.Fatalf("unexpected encoding %s", b)
	}
	if l, ok := generic["l"].([]any); !ok || len(l) != 0 {
		t.Fatalf("empty list should encode as [], got %s", b)
	}
}

func TestAnswerValueIsEmpty(t *testing.T) {
	cases := []struct {
		v    AnswerValue
		want bool
	}{
		{Empty(), true},
		{Scalar(""), true},
		{List(), true},
		{Scalar(" "), false},
		{Numeric(0), false},
		{List(""), false},
		{Blob(nil), false},
	}
	for i, c := range cases {
		if got := c.v.IsEmpty(); got != c.want {
			t.Errorf("case %d (%s): IsEmpty=%v, want %v", i, c.v.Kind(), got, c.want)
		}
	}
}

func TestListCopiesInput(t *testing.T) {
	items := []string{"a", "b"}
	v := List(items...)
	items[0] = "z"
	got, _ := v.Items()
	if got[0] != "a" {
		t.Fatal("List should not alias the caller's slice")
	}
	got[1] = "z"
	again, _ := v.Items()
	if again[1] != "b" {
		t.Fatal("Items should return a copy")
	}
}

func TestAnswersScanValue(t *testing.T) {
	in := Answers{"q1": Scalar("yes"), "q2": List("a")}
	dv, err := in.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var out Answers
	if err := out.Scan([]byte(dv.(string))); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !out.Get("q1").Equal(Scalar("yes")) || !out.Get("q2").Equal(List("a")) {
		t.Fatalf("unexpected scanned answers %v", out)
	}

	var empty Answers
	if err := empty.Scan(nil); err != nil || empty != nil {
		t.Fatalf("nil scan should leave answers nil, got %v %v", empty, err)
	}
}
