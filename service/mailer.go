package service

import (
	"fmt"

	"github.com/bookcourier/backend/models"
	mail "github.com/go-mail/mail/v2"
)

// Mailer sends transactional mail over SMTP. Invoice mail is best effort:
// callers log failures and never fail the request over them.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewMailer(host string, port int, username, password, from string) *Mailer {
	return &Mailer{host: host, port: port, username: username, password: password, from: from}
}

// SendInvoice emails the buyer their invoice after a successful payment.
func (m *Mailer) SendInvoice(inv *models.Invoice) error {
	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", inv.BuyerEmail)
	msg.SetHeader("Subject", "Your BookCourier invoice for "+inv.BookName)
	body := fmt.Sprintf(
		"Hi %s,\n\nThanks for your purchase!\n\nBook: %s\nAmount: $%.2f\nTransaction: %s\nPaid at: %s\n\nBookCourier",
		inv.BuyerName, inv.BookName, inv.Price, inv.TransactionID, inv.PaidAt.Format("2006-01-02 15:04"),
	)
	msg.SetBody("text/plain", body)

	d := mail.NewDialer(m.host, m.port, m.username, m.password)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	return d.DialAndSend(msg)
}
