package builtins

import (
	"testing"

	"jyro/pkg/catalog"
	"jyro/pkg/value"
)

func TestHashAndVerifyPasswordRoundTrip(t *testing.T) {
	hash, err := hashPasswordFn{}.Execute([]*value.Value{value.String("correct horse")}, nil)
	if err != nil {
		t.Fatalf("unexpected error hashing: %v", err)
	}
	ok, err := verifyPasswordFn{}.Execute([]*value.Value{value.String("correct horse"), hash}, nil)
	if err != nil {
		t.Fatalf("unexpected error verifying: %v", err)
	}
	if !ok.AsBool() {
		t.Errorf("expected the correct password to verify")
	}

	bad, err := verifyPasswordFn{}.Execute([]*value.Value{value.String("wrong password"), hash}, nil)
	if err != nil {
		t.Fatalf("unexpected error verifying a wrong password: %v", err)
	}
	if bad.AsBool() {
		t.Errorf("expected a wrong password not to verify")
	}
}

func TestJWTSignAndVerifyRoundTrip(t *testing.T) {
	payload := value.NewObject()
	payload.SetProperty("sub", value.String("user-1"))
	payload.SetProperty("role", value.String("admin"))

	token, err := jwtSignFn{}.Execute([]*value.Value{payload, value.String("s3cret"), value.String("1h")}, nil)
	if err != nil {
		t.Fatalf("unexpected error signing: %v", err)
	}

	claims, err := jwtVerifyFn{}.Execute([]*value.Value{token, value.String("s3cret")}, nil)
	if err != nil {
		t.Fatalf("unexpected error verifying: %v", err)
	}
	if claims.Property("sub").AsString() != "user-1" {
		t.Errorf("sub claim = %q, want user-1", claims.Property("sub").AsString())
	}
	if claims.Property("role").AsString() != "admin" {
		t.Errorf("role claim = %q, want admin", claims.Property("role").AsString())
	}
}

func TestJWTVerifyRejectsWrongSecret(t *testing.T) {
	payload := value.NewObject()
	payload.SetProperty("sub", value.String("user-1"))

	token, _ := jwtSignFn{}.Execute([]*value.Value{payload, value.String("s3cret")}, nil)
	if _, err := jwtVerifyFn{}.Execute([]*value.Value{token, value.String("wrong-secret")}, nil); err == nil {
		t.Fatalf("expected verification to fail with the wrong secret")
	}
}

func TestJWTSignRejectsMalformedExpiry(t *testing.T) {
	payload := value.NewObject()
	if _, err := jwtSignFn{}.Execute([]*value.Value{payload, value.String("s3cret"), value.String("not-a-duration")}, nil); err == nil {
		t.Fatalf("expected an error for a malformed expires_in duration")
	}
}

func TestRegisterAuthAddsAllFourFunctions(t *testing.T) {
	reg := catalog.NewRegistry()
	RegisterAuth(reg)
	for _, name := range []string{"auth.hash_password", "auth.verify_password", "jwt.sign", "jwt.verify"} {
		if _, ok := reg.Lookup(name); !ok {
			t.Errorf("expected %s to be registered", name)
		}
	}
}
