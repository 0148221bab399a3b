package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"decor_admin/internal/clients"
	"decor_admin/internal/domain"

	"github.com/sirupsen/logrus"
)

type OrderUseCase interface {
	SendOrder(ctx context.Context, order domain.OrderRequest) error
}

type orderUseCase struct {
	settings  SettingsUseCase
	messenger clients.Messenger
	log       *logrus.Logger
}

func NewOrderUseCase(settings SettingsUseCase, messenger clients.Messenger, logger *logrus.Logger) OrderUseCase {
	return &orderUseCase{
		settings:  settings,
		messenger: messenger,
		log:       logger,
	}
}

func (uc *orderUseCase) SendOrder(ctx context.Context, order domain.OrderRequest) error {
	creds, err := uc.settings.GetTelegram(ctx)
	if err != nil {
		return err
	}
	if creds.BotToken == "" || creds.AdminUserID == "" {
		uc.log.Error("Use Case: Order received but telegram credentials are not set")
		return fmt.Errorf("telegram credentials: %w", domain.ErrNotConfigured)
	}

	if err := uc.messenger.SendMessage(ctx, creds.BotToken, creds.AdminUserID, FormatOrderMessage(order)); err != nil {
		uc.log.Errorf("Use Case: Failed to deliver order from '%s': %v", order.Name, err)
		return err
	}
	uc.log.Infof("Use Case: Order for '%s' delivered", order.ProductName)
	return nil
}

// FormatOrderMessage renders the order as a Telegram Markdown message.
func FormatOrderMessage(order domain.OrderRequest) string {
	contact := "☎️ Call"
	if order.ContactType == domain.ContactWhatsApp {
		contact = "💬 WhatsApp"
	}

	var b strings.Builder
	b.WriteString("🔔 *New order!*\n\n")
	fmt.Fprintf(&b, "👤 *Client:* %s\n", order.Name)
	fmt.Fprintf(&b, "📞 *Phone:* `%s`\n", order.Phone)
	fmt.Fprintf(&b, "📱 *Contact via:* %s\n", contact)
	fmt.Fprintf(&b, "📅 *Event date:* %s\n\n", formatEventDate(order.EventDate))
	fmt.Fprintf(&b, "🎯 *Service:* %s\n", order.ProductName)
	if order.ProductCategory != "" {
		fmt.Fprintf(&b, "📂 *Category:* %s\n", order.ProductCategory)
	}
	if order.ProductPrice != nil && order.ProductPrice.IsPositive() {
		fmt.Fprintf(&b, "💰 *Price:* %s som\n", order.ProductPrice.StringFixed(2))
	}
	if order.Comment != "" {
		fmt.Fprintf(&b, "\n💭 *Comment:*\n%s", order.Comment)
	}
	return strings.TrimSpace(b.String())
}

func formatEventDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "Not specified"
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("02 January 2006")
		}
	}
	return raw
}
