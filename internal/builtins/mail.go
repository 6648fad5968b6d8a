// Mail built-in over github.com/resend/resend-go/v2, a direct teacher
// dependency. The API key is never accepted as a script argument (it
// would otherwise end up in source control); it is read from the
// environment on each call, matching how the teacher's own mail helper
// is wired.
package builtins

import (
	"os"

	"github.com/resend/resend-go/v2"

	"github.com/stuncs69/vexel/internal/config"
)

func init() {
	register("mail_send", mailSendBuiltin)
}

func mailSendBuiltin(args []Value) (Value, error) {
	if len(args) != 3 {
		return argError("mail_send")
	}
	if !config.Current.AllowNet {
		return securityDenied("SEC-0005")
	}
	to, ok1 := str(args[0])
	subject, ok2 := str(args[1])
	body, ok3 := str(args[2])
	if !ok1 || !ok2 || !ok3 {
		return argError("mail_send")
	}
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		return nil, nil
	}
	client := resend.NewClient(apiKey)
	_, err := client.Emails.Send(&resend.SendEmailRequest{
		From:    "vexel@resend.dev",
		To:      []string{to},
		Subject: subject,
		Text:    body,
	})
	if err != nil {
		return nil, nil
	}
	return boolResult(true), nil
}
