package util

import (
	"testing"
	"time"

	"questionnaire_backend/internal/model"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("author-1", model.RoleAuthor, "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, "secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.Subject != "author-1" || claims.Role != model.RoleAuthor {
		t.Fatalf("unexpected claims %+v", claims)
	}

	if _, err := ParseJWT(token, "other-secret"); err == nil {
		t.Fatal("token signed with another secret should be rejected")
	}
}

func TestJWTExpired(t *testing.T) {
	token, err := GenerateJWT("r-1", model.RoleRespondent, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT(token, "secret"); err == nil {
		t.Fatal("expired token should be rejected")
	}
}
