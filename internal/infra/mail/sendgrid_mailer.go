package mail

import (
	"context"
	"fmt"
	"log"

	"bibigin/internal/usecase"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridで注文確認メールを送る。
// 顧客向けとショップ管理者向けの2通を送る。
type SendGridOrderMailer struct {
	apiKey     string
	fromEmail  string
	adminEmail string
}

func NewSendGridOrderMailer(apiKey string, fromEmail string, adminEmail string) *SendGridOrderMailer {
	return &SendGridOrderMailer{
		apiKey:     apiKey,
		fromEmail:  fromEmail,
		adminEmail: adminEmail,
	}
}

// SendOrderConfirmation は注文確定メールを送る。
// 注文はコミット済みなので、ここの失敗は呼び出し側がログに残して握りつぶす。
func (m *SendGridOrderMailer) SendOrderConfirmation(ctx context.Context, data usecase.OrderEmailData) error {
	if m.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if m.fromEmail == "" {
		return fmt.Errorf("from address is empty")
	}

	customerBody := fmt.Sprintf(
		"Ciao %s %s,\n\ngrazie per il tuo ordine %s!\n\nTi contatteremo per il pagamento e la spedizione.\n\nBibiGin",
		data.FirstName, data.LastName, data.OrderID,
	)
	if err := m.send(data.Email, "Conferma ordine BibiGin", customerBody); err != nil {
		return err
	}

	if m.adminEmail != "" {
		adminBody := fmt.Sprintf(
			"Nuovo ordine %s\n\nCliente: %s %s <%s>\nTelefono: %s",
			data.OrderID, data.FirstName, data.LastName, data.Email, data.Phone,
		)
		if err := m.send(m.adminEmail, "Nuovo ordine "+data.OrderID, adminBody); err != nil {
			return err
		}
	}

	return nil
}

func (m *SendGridOrderMailer) send(to string, subject string, body string) error {
	if to == "" {
		return fmt.Errorf("to address is empty")
	}

	from := sgmail.NewEmail("BibiGin", m.fromEmail)
	toEmail := sgmail.NewEmail("", to)

	// Text & HTML — HTMLは最低限整形
	message := sgmail.NewSingleEmail(from, subject, toEmail, body, fmt.Sprintf("<pre>%s</pre>", body))

	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}

	if response.StatusCode >= 400 {
		log.Printf("[sendgrid] error status=%d, body=%s", response.StatusCode, response.Body)
		return fmt.Errorf("sendgrid send failed: status=%d", response.StatusCode)
	}

	log.Printf("[sendgrid] mail sent: status=%d to=%s subject=%s", response.StatusCode, to, subject)
	return nil
}
