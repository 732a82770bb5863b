package notifications

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/angelmondragon/homefinderz-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/homefinderz-backend/pkg/errors"
)

// SendGridMailer delivers price-change notices through the SendGrid v3 API.
type SendGridMailer struct {
	cfg    config.SendgridConfig
	client *sendgrid.Client
}

// NewSendGridMailer builds a mailer from SendGrid settings.
func NewSendGridMailer(cfg config.SendgridConfig) (*SendGridMailer, error) {
	if cfg.APIKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "sendgrid api key required")
	}
	if cfg.DefaultFrom == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "sendgrid from address required")
	}
	return &SendGridMailer{cfg: cfg, client: sendgrid.NewSendClient(cfg.APIKey)}, nil
}

// SendPriceChange sends one price-change mail. SendGrid reports API-level
// rejections via status code rather than error, so both are checked.
func (m *SendGridMailer) SendPriceChange(ctx context.Context, recipient string, notice PriceChange) error {
	from := mail.NewEmail(m.cfg.FromName, m.cfg.DefaultFrom)
	to := mail.NewEmail("", recipient)
	subject := fmt.Sprintf("Price update: %s", notice.PropertyName)
	plain := fmt.Sprintf(
		"The price for %s (%s) changed from %s %s to %s %s.",
		notice.PropertyName, notice.Address,
		notice.OldPrice.StringFixed(2), notice.Currency,
		notice.NewPrice.StringFixed(2), notice.Currency,
	)
	html := fmt.Sprintf(
		"<p>The price for <strong>%s</strong> (%s) changed from %s %s to <strong>%s %s</strong>.</p>",
		notice.PropertyName, notice.Address,
		notice.OldPrice.StringFixed(2), notice.Currency,
		notice.NewPrice.StringFixed(2), notice.Currency,
	)

	message := mail.NewSingleEmail(from, subject, to, plain, html)
	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sendgrid send")
	}
	if resp.StatusCode >= 400 {
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("sendgrid send returned status %d", resp.StatusCode))
	}
	return nil
}
