// Package mail sends fulfillment notifications over SMTP.
package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"

	"starmap/internal/core/domain/model/artifact"
	"starmap/internal/core/ports"
	"starmap/internal/pkg/errs"

	gomail "github.com/wneessen/go-mail"
)

var _ ports.Notifier = (*Notifier)(nil)

// Sender is the part of *gomail.Client the notifier uses.
type Sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

// ServerSettings describes the SMTP relay.
type ServerSettings struct {
	Host     string
	Port     int
	Username string
	Password string
}

// NewClient builds an SMTP client. Authentication is used only when a
// username is configured.
func NewClient(s ServerSettings) (*gomail.Client, error) {
	if s.Host == "" {
		return nil, errs.NewValueIsRequiredError("smtp host")
	}

	opts := []gomail.Option{
		gomail.WithPort(s.Port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}
	if s.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.Username),
			gomail.WithPassword(s.Password),
		)
	}

	return gomail.NewClient(s.Host, opts...)
}

var bodyTemplate = template.Must(template.New("notification").Parse(`<h2>Star map poster ready</h2>
<p>Order <strong>{{.OrderName}}</strong> ({{.OrderID}}) has been rendered.</p>
<ul>
<li>Customer: {{.CustomerEmail}}</li>
<li>Location: {{.PlaceName}}</li>
<li>Coordinates: {{.Coordinates}}</li>
<li>Size: {{.Size}}</li>
</ul>
<p><a href="{{.ArtifactURL}}">Download PDF</a></p>
`))

type bodyView struct {
	ports.Notification
	Size string
}

// Notifier mails the operator once an order is fulfilled.
type Notifier struct {
	sender Sender
	from   string
	to     string
	logger *slog.Logger
}

func NewNotifier(sender Sender, from, to string, logger *slog.Logger) (*Notifier, error) {
	var err error
	if sender == nil {
		err = errors.Join(err, errs.NewValueIsRequiredError("sender"))
	}
	if from == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("from"))
	}
	if to == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("to"))
	}
	if err != nil {
		return nil, err
	}

	return &Notifier{
		sender: sender,
		from:   from,
		to:     to,
		logger: logger.With("component", "mail_notifier"),
	}, nil
}

// Subject is the subject line for n.
func Subject(n ports.Notification) string {
	return fmt.Sprintf("Star map poster ready: %s", n.OrderName)
}

// Body renders the HTML body for n.
func Body(n ports.Notification) (string, error) {
	var buf bytes.Buffer
	view := bodyView{Notification: n, Size: artifact.FormatSize(n.ArtifactSize)}
	if err := bodyTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (m *Notifier) Send(ctx context.Context, n ports.Notification) error {
	body, err := Body(n)
	if err != nil {
		return fmt.Errorf("render notification body: %w", err)
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(m.to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(Subject(n))
	msg.SetBodyString(gomail.TypeTextHTML, body)

	if err := m.sender.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send notification for order %d: %w", n.OrderID, err)
	}

	m.logger.InfoContext(ctx, "notification sent", "orderId", n.OrderID, "to", m.to)
	return nil
}
