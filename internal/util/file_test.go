package util

import (
	"bytes"
	"reflect"
	"testing"

	"questionnaire_backend/internal/model"
)

func TestAllowedAttachmentTypes(t *testing.T) {
	cases := []struct {
		q    model.Question
		want []string
	}{
		{model.Question{Type: model.QuestionPhoto}, []string{MimeImage}},
		{model.Question{Type: model.QuestionSignature}, []string{MimeImage}},
		{model.Question{Type: model.QuestionFileUpload}, nil},
		{model.Question{Type: model.QuestionFileUpload, Accept: "image/*, application/pdf, .docx"}, []string{"image/", "application/pdf"}},
		{model.Question{Type: model.QuestionText}, nil},
	}
	for _, c := range cases {
		if got := AllowedAttachmentTypes(&c.q); !reflect.DeepEqual(got, c.want) {
			t.Errorf("%s %q: got %v, want %v", c.q.Type, c.q.Accept, got, c.want)
		}
	}
}

func TestValidateMimeType(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n0000000000")
	if mt, err := ValidateMimeType(bytes.NewReader(png), []string{MimeImage}); err != nil || mt != "image/png" {
		t.Fatalf("png rejected: %s %v", mt, err)
	}
	if _, err := ValidateMimeType(bytes.NewReader([]byte("plain text")), []string{MimeImage}); err == nil {
		t.Fatal("text should not pass as image")
	}
	if _, err := ValidateMimeType(bytes.NewReader([]byte("plain text")), nil); err != nil {
		t.Fatalf("no restriction should accept anything: %v", err)
	}
}
