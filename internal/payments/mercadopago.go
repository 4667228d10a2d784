package payments

import (
	"context"
	"fmt"
	"strconv"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"go.uber.org/zap"

	"github.com/Pedrolamon/hairdayy-sub000/internal/logging"
	"github.com/Pedrolamon/hairdayy-sub000/internal/timezone"
	ucReferral "github.com/Pedrolamon/hairdayy-sub000/internal/usecase/referral"
)

// WebhookEvent is the notification body Mercado Pago posts on payment
// state changes.
type WebhookEvent struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

type Processor struct {
	payments payment.Client
	process  *ucReferral.ProcessPayment
	cancel   *ucReferral.CancelPayment
}

func NewProcessor(
	accessToken string,
	process *ucReferral.ProcessPayment,
	cancel *ucReferral.CancelPayment,
) (*Processor, error) {

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &Processor{
		payments: payment.NewClient(cfg),
		process:  process,
		cancel:   cancel,
	}, nil
}

// Handle resolves the reported payment against the Mercado Pago API and
// feeds the referral engine. The payment's external reference carries the
// paying user's id, set when the subscription checkout is created.
func (p *Processor) Handle(ctx context.Context, ev WebhookEvent) error {
	if ev.Type != "payment" {
		return nil
	}

	paymentID, err := strconv.Atoi(ev.Data.ID)
	if err != nil {
		return fmt.Errorf("invalid payment id %q", ev.Data.ID)
	}

	res, err := p.payments.Get(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("fetch payment %d: %w", paymentID, err)
	}

	userID64, err := strconv.ParseUint(res.ExternalReference, 10, 32)
	if err != nil {
		logging.L().Warn("payment without user reference",
			zap.Int("payment_id", paymentID),
			zap.String("external_reference", res.ExternalReference),
		)
		return nil
	}
	userID := uint(userID64)

	switch res.Status {
	case "approved":
		paidAt := res.DateApproved
		if paidAt.IsZero() {
			paidAt = timezone.Now()
		}
		return p.process.Execute(ctx, userID, paidAt)

	case "cancelled", "refunded", "charged_back":
		return p.cancel.Execute(ctx, userID)
	}

	return nil
}
