package notification

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"text/template"
	"time"

	"github.com/shopfeed/backend/internal/domain/identity"
	"github.com/shopfeed/backend/internal/domain/shared"
	"github.com/shopfeed/backend/internal/domain/trade"
	"github.com/shopfeed/backend/internal/infrastructure/mail"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const sendTimeout = 30 * time.Second

// Clock returns the current time
type Clock func() time.Time

var (
	confirmationTemplate = template.Must(template.New("confirmation").Parse(
		`Hello{{if .Name}}, {{.Name}}{{end}}!

To confirm your registration follow the link:
{{.Link}}
`))

	orderStatusTemplate = template.Must(template.New("order_status").Parse(
		`Your order {{.OrderID}} of {{.Date}} has a new status: {{.Status}}.
{{.Note}}
`))
)

// statusNotes lists the statuses that are announced to the customer
var statusNotes = map[trade.OrderStatus]struct {
	subject string
	note    string
}{
	trade.OrderStatusNew:        {subject: "Order placed", note: "Thank you for your order. The shop will contact you shortly."},
	trade.OrderStatusInProgress: {subject: "Order in progress", note: "The shop has started working on your order."},
	trade.OrderStatusSent:       {subject: "Order sent", note: "Your order is on its way."},
	trade.OrderStatusDone:       {subject: "Order delivered", note: "Your order has been delivered."},
}

// ConfirmationEmailHandler mails a confirmation link to newly registered,
// inactive users
type ConfirmationEmailHandler struct {
	confirmations identity.ConfirmationRepository
	mailer        mail.Mailer
	baseURL       string
	logger        *zap.Logger
}

// NewConfirmationEmailHandler creates the handler. baseURL is the confirm
// endpoint the link points to.
func NewConfirmationEmailHandler(confirmations identity.ConfirmationRepository, mailer mail.Mailer, baseURL string, logger *zap.Logger) *ConfirmationEmailHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConfirmationEmailHandler{confirmations: confirmations, mailer: mailer, baseURL: baseURL, logger: logger}
}

// EventTypes implements EventHandler
func (h *ConfirmationEmailHandler) EventTypes() []string {
	return []string{identity.EventTypeUserRegistered}
}

// Handle implements EventHandler
func (h *ConfirmationEmailHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	registered, ok := event.(*identity.UserRegisteredEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s", identity.EventTypeUserRegistered, event.EventType())
	}
	if registered.Active {
		return nil
	}

	confirmation, err := h.confirmations.GetOrCreate(ctx, registered.UserID)
	if err != nil {
		return fmt.Errorf("confirmation token: %w", err)
	}
	link, err := ConfirmationLink(h.baseURL, registered.Email, confirmation.Token)
	if err != nil {
		return err
	}

	var body bytes.Buffer
	if err := confirmationTemplate.Execute(&body, map[string]string{"Link": link}); err != nil {
		return err
	}
	if err := send(ctx, h.mailer, mail.Message{
		To:      []string{registered.Email},
		Subject: "Registration confirmation",
		Body:    body.String(),
	}); err != nil {
		return err
	}
	h.logger.Info("Confirmation email sent", zap.String("user_id", registered.UserID.String()))
	return nil
}

// ConfirmationLink appends email and token to the confirm endpoint
func ConfirmationLink(baseURL, email, token string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("confirm base url: %w", err)
	}
	q := u.Query()
	q.Set("email", email)
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// OrderStatusEmailHandler tells customers about status changes of the
// orders they placed today
type OrderStatusEmailHandler struct {
	users  identity.UserRepository
	mailer mail.Mailer
	now    Clock
	logger *zap.Logger
}

// OrderStatusOption configures an OrderStatusEmailHandler
type OrderStatusOption func(*OrderStatusEmailHandler)

// WithClock replaces the wall clock used to decide what "today" is
func WithClock(now Clock) OrderStatusOption {
	return func(h *OrderStatusEmailHandler) {
		h.now = now
	}
}

// NewOrderStatusEmailHandler creates the handler
func NewOrderStatusEmailHandler(users identity.UserRepository, mailer mail.Mailer, logger *zap.Logger, opts ...OrderStatusOption) *OrderStatusEmailHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &OrderStatusEmailHandler{users: users, mailer: mailer, now: time.Now, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// EventTypes implements EventHandler
func (h *OrderStatusEmailHandler) EventTypes() []string {
	return []string{trade.EventTypeOrderStatusChanged}
}

// Handle implements EventHandler
func (h *OrderStatusEmailHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*trade.OrderStatusChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s", trade.EventTypeOrderStatusChanged, event.EventType())
	}
	if changed.OldStatus == changed.NewStatus {
		return nil
	}
	notice, ok := statusNotes[changed.NewStatus]
	if !ok {
		return nil
	}
	if !sameDay(changed.OrderDate, h.now()) {
		h.logger.Debug("Skipping status email for an older order", zap.String("order_id", changed.OrderID.String()))
		return nil
	}

	user, err := h.users.FindByID(ctx, changed.UserID)
	if err != nil {
		return fmt.Errorf("order owner: %w", err)
	}

	var body bytes.Buffer
	if err := orderStatusTemplate.Execute(&body, map[string]string{
		"OrderID": changed.OrderID.String(),
		"Date":    changed.OrderDate.Local().Format("2006-01-02"),
		"Status":  statusLabel(changed.NewStatus),
		"Note":    notice.note,
	}); err != nil {
		return err
	}
	if err := send(ctx, h.mailer, mail.Message{
		To:      []string{user.Email},
		Subject: notice.subject,
		Body:    body.String(),
	}); err != nil {
		return err
	}
	h.logger.Info("Order status email sent",
		zap.String("order_id", changed.OrderID.String()),
		zap.String("status", changed.NewStatus.String()),
	)
	return nil
}

// statusLabel renders in_progress as "In Progress". A Caser keeps state
// between calls, so each call builds its own.
func statusLabel(s trade.OrderStatus) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s.String(), "_", " "))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// send delivers one message. The delivery outlives the request that caused
// it but is bounded by sendTimeout.
func send(ctx context.Context, mailer mail.Mailer, msg mail.Message) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
	defer cancel()
	return mailer.Send(ctx, msg)
}

var (
	_ EventHandler = (*ConfirmationEmailHandler)(nil)
	_ EventHandler = (*OrderStatusEmailHandler)(nil)
)
