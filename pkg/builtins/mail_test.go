package builtins

import (
	"testing"

	"jyro/pkg/catalog"
	"jyro/pkg/value"
)

func TestMailSendRequiresSMTPConfig(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_PORT", "")

	msg := value.NewObject()
	msg.SetProperty("to", value.String("dest@example.com"))
	msg.SetProperty("subject", value.String("hi"))
	msg.SetProperty("body", value.String("hello"))

	if _, err := (mailSendFn{}).Execute([]*value.Value{msg}, nil); err == nil {
		t.Fatalf("expected an error when SMTP_HOST/SMTP_PORT are unset")
	}
}

func TestMailSendRejectsNonNumericPort(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "not-a-port")

	msg := value.NewObject()
	msg.SetProperty("to", value.String("dest@example.com"))

	if _, err := (mailSendFn{}).Execute([]*value.Value{msg}, nil); err == nil {
		t.Fatalf("expected an error for a non-numeric SMTP_PORT")
	}
}

func TestStringPropReturnsEmptyForNonString(t *testing.T) {
	msg := value.NewObject()
	msg.SetProperty("to", value.Number(5))
	if got := stringProp(msg, "to"); got != "" {
		t.Errorf("stringProp on a non-string property = %q, want empty", got)
	}
	if got := stringProp(msg, "missing"); got != "" {
		t.Errorf("stringProp on a missing property = %q, want empty", got)
	}
}

func TestRegisterMailAddsMailSend(t *testing.T) {
	reg := catalog.NewRegistry()
	RegisterMail(reg)
	if _, ok := reg.Lookup("mail.send"); !ok {
		t.Errorf("expected mail.send to be registered")
	}
}
