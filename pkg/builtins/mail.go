package builtins

import (
	"errors"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"

	"jyro/pkg/catalog"
	"jyro/pkg/value"
)

// mailSendFn wraps gopkg.in/gomail.v2 (grounded on the teacher's
// mail.send in pkg/eval/eval.go, which reads SMTP_HOST/SMTP_PORT/SMTP_USER/
// SMTP_PASS from the environment and builds a gomail.Message/Dialer).
type mailSendFn struct{}

func (mailSendFn) Signature() catalog.Signature {
	sig, _ := catalog.NewSignature("mail.send", catalog.ParamBoolean,
		catalog.Param{Name: "message", Type: catalog.ParamObject})
	return sig
}

func (mailSendFn) Execute(args []*value.Value, _ *catalog.Context) (*value.Value, error) {
	msg := args[0]

	to := stringProp(msg, "to")
	from := stringProp(msg, "from")
	subject := stringProp(msg, "subject")
	body := stringProp(msg, "body")
	html := stringProp(msg, "html")

	smtpHost := os.Getenv("SMTP_HOST")
	smtpPortStr := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	if smtpHost == "" || smtpPortStr == "" {
		return nil, errors.New("mail.send: SMTP_HOST and SMTP_PORT environment variables must be set")
	}
	smtpPort, err := strconv.Atoi(smtpPortStr)
	if err != nil {
		return nil, errors.New("mail.send: SMTP_PORT must be an integer")
	}

	if from == "" {
		from = smtpUser
		if from == "" {
			from = "noreply@example.com"
		}
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	if html != "" {
		m.SetBody("text/html", html)
	} else {
		m.SetBody("text/plain", body)
	}

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	if err := d.DialAndSend(m); err != nil {
		return nil, errors.New("mail.send: " + err.Error())
	}
	return value.True, nil
}

func stringProp(obj *value.Value, name string) string {
	p := obj.Property(name)
	if p.Kind() != value.KindString {
		return ""
	}
	return p.AsString()
}

// RegisterMail adds mail.send to reg.
func RegisterMail(reg *catalog.Registry) {
	reg.Register(mailSendFn{})
}
