package validators

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendWelcomeEmail greets a newly registered user. Sending is best-effort
// and disabled entirely when SENDGRID_API_KEY is not set.
func SendWelcomeEmail(name, email string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return nil
	}

	from := mail.NewEmail("Chat App", os.Getenv("SENDER_EMAIL"))
	to := mail.NewEmail(name, email)
	subject := "Welcome to Chat App"
	plainTextContent := fmt.Sprintf("Hi %s, your account is ready. Log in to start chatting.", name)
	htmlContent := fmt.Sprintf("<p>Hi %s, your account is ready. Log in to start chatting.</p>", name)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(apiKey)
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}
	return nil
}
