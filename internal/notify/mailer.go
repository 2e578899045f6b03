package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/wneessen/go-mail"

	"tambo/internal/model"
)

// Message is one status-change notification to a customer.
type Message struct {
	Email     string
	Name      string
	OrderCode string
	Status    model.OrderStatus
}

// Sender delivers a rendered notification. Delivery is attempted once; the
// dispatcher never retries.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// MailerConfig holds SMTP transport settings. ForceIPv4 and SkipTLSVerify
// exist because the production host's IPv6 routes to Gmail time out and its
// egress proxy re-signs certificates.
type MailerConfig struct {
	Host          string
	Port          int
	Username      string
	Password      string
	From          string
	ForceIPv4     bool
	SkipTLSVerify bool
}

// Mailer sends status-change emails over SMTP.
type Mailer struct {
	client *mail.Client
	from   string
}

// NewMailer builds an SMTP-backed sender.
func NewMailer(cfg MailerConfig) (*Mailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	}
	if cfg.SkipTLSVerify {
		opts = append(opts, mail.WithTLSConfig(&tls.Config{
			InsecureSkipVerify: true, //nolint:gosec // documented workaround for proxied egress
			ServerName:         cfg.Host,
		}))
	}
	if cfg.ForceIPv4 {
		dialer := &net.Dialer{Timeout: 15 * time.Second}
		opts = append(opts, mail.WithDialContextFunc(func(ctx context.Context, _, address string) (net.Conn, error) {
			return dialer.DialContext(ctx, "tcp4", address)
		}))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &Mailer{client: client, from: cfg.From}, nil
}

// Send delivers the notification. Statuses without a template are a no-op.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	subject, body, ok := render(msg)
	if !ok {
		return nil
	}

	message := mail.NewMsg()
	if err := message.From(m.from); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := message.To(msg.Email); err != nil {
		return fmt.Errorf("to address: %w", err)
	}
	message.Subject(subject)
	message.SetBodyString(mail.TypeTextHTML, body)

	return m.client.DialAndSendWithContext(ctx, message)
}

// render maps a status to its mail template. Only confirmed and delivered
// orders notify the customer; every other status renders nothing.
func render(msg Message) (subject, body string, ok bool) {
	subject = fmt.Sprintf("Actualización de tu pedido %s - El Tambo Cañetano", msg.OrderCode)

	switch msg.Status {
	case model.OrderStatusConfirmed:
		body = fmt.Sprintf(`<div style="font-family: Arial, sans-serif; color: #333;">
  <h2 style="color: #28a745;">¡Pedido Confirmado! 👨‍🍳</h2>
  <p>Hola <strong>%s</strong>,</p>
  <p>Tu pedido <strong>%s</strong> ha sido aceptado por cocina y se está preparando.</p>
</div>`, msg.Name, msg.OrderCode)
		return subject, body, true
	case model.OrderStatusDelivered:
		body = fmt.Sprintf(`<div style="font-family: Arial, sans-serif; color: #333;">
  <h2 style="color: #007bff;">¡Pedido Entregado! 🍽️</h2>
  <p>Hola <strong>%s</strong>,</p>
  <p>Tu pedido <strong>%s</strong> ha sido servido/entregado.</p>
  <p>¡Gracias por tu preferencia!</p>
</div>`, msg.Name, msg.OrderCode)
		return subject, body, true
	}
	return "", "", false
}
