// Package builtins provides host-function implementations that register
// against a catalog.Registry for use by pkg/jyro.Execute. Each file here
// adapts one teacher helper group (pkg/eval/auth_helpers.go,
// pkg/eval/eval.go's gomail block, pkg/eval/ws_helpers.go) from the
// teacher's `(args ...Object) Object` closure shape into the catalog.Function
// interface, so the domain dependencies the teacher imported keep doing the
// same job against Jyro's value model (SPEC_FULL.md §B).
package builtins

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"jyro/pkg/catalog"
	"jyro/pkg/value"
)

// hashPasswordFn wraps bcrypt.GenerateFromPassword (grounded on the
// teacher's HashPassword in pkg/eval/auth_helpers.go).
type hashPasswordFn struct{}

func (hashPasswordFn) Signature() catalog.Signature {
	sig, _ := catalog.NewSignature("auth.hash_password", catalog.ParamString,
		catalog.Param{Name: "password", Type: catalog.ParamString})
	return sig
}

func (hashPasswordFn) Execute(args []*value.Value, _ *catalog.Context) (*value.Value, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(args[0].AsString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return value.String(string(hash)), nil
}

// verifyPasswordFn wraps bcrypt.CompareHashAndPassword (teacher's VerifyPassword).
type verifyPasswordFn struct{}

func (verifyPasswordFn) Signature() catalog.Signature {
	sig, _ := catalog.NewSignature("auth.verify_password", catalog.ParamBoolean,
		catalog.Param{Name: "password", Type: catalog.ParamString},
		catalog.Param{Name: "hash", Type: catalog.ParamString})
	return sig
}

func (verifyPasswordFn) Execute(args []*value.Value, _ *catalog.Context) (*value.Value, error) {
	err := bcrypt.CompareHashAndPassword([]byte(args[1].AsString()), []byte(args[0].AsString()))
	return value.Bool(err == nil), nil
}

// jwtSignFn wraps golang-jwt/jwt/v5 HS256 signing (teacher's SignToken). The
// payload argument is a Jyro Object; its top-level properties become JWT claims.
type jwtSignFn struct{}

func (jwtSignFn) Signature() catalog.Signature {
	sig, _ := catalog.NewSignature("jwt.sign", catalog.ParamString,
		catalog.Param{Name: "payload", Type: catalog.ParamObject},
		catalog.Param{Name: "secret", Type: catalog.ParamString},
		catalog.Param{Name: "expires_in", Type: catalog.ParamString, Optional: true})
	return sig
}

func (jwtSignFn) Execute(args []*value.Value, _ *catalog.Context) (*value.Value, error) {
	payload := args[0]
	secret := args[1].AsString()
	expiresIn := "24h"
	if len(args) > 2 {
		expiresIn = args[2].AsString()
	}

	claims := jwt.MapClaims{}
	for _, k := range payload.Keys() {
		claims[k] = valueToGo(payload.Property(k))
	}

	duration, err := time.ParseDuration(expiresIn)
	if err != nil {
		return nil, errors.New("jwt.sign: invalid expires_in duration: " + err.Error())
	}
	claims["exp"] = time.Now().Add(duration).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, err
	}
	return value.String(signed), nil
}

// jwtVerifyFn wraps golang-jwt/jwt/v5 verification (teacher's VerifyToken),
// returning the claims as a Jyro Object, or raising on an invalid token.
type jwtVerifyFn struct{}

func (jwtVerifyFn) Signature() catalog.Signature {
	sig, _ := catalog.NewSignature("jwt.verify", catalog.ParamObject,
		catalog.Param{Name: "token", Type: catalog.ParamString},
		catalog.Param{Name: "secret", Type: catalog.ParamString})
	return sig
}

func (jwtVerifyFn) Execute(args []*value.Value, _ *catalog.Context) (*value.Value, error) {
	tokenString := args[0].AsString()
	secret := args[1].AsString()

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("jwt.verify: invalid token")
	}

	out := value.NewObject()
	for k, v := range claims {
		out.SetProperty(k, goToValue(v))
	}
	return out, nil
}

// RegisterAuth adds auth.hash_password, auth.verify_password, jwt.sign and
// jwt.verify to reg.
func RegisterAuth(reg *catalog.Registry) {
	reg.Register(hashPasswordFn{})
	reg.Register(verifyPasswordFn{})
	reg.Register(jwtSignFn{})
	reg.Register(jwtVerifyFn{})
}
