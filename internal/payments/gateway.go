package payments

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/r70610363/swiftcart-backend/pkg/errors"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
	"github.com/r70610363/swiftcart-backend/pkg/metrics"
	"github.com/r70610363/swiftcart-backend/pkg/upstream"
)

// Session is the gateway's answer to an initiation request. Simulated
// sessions are flagged so callers and logs can always tell them from a real
// gateway answer.
type Session struct {
	PaymentSessionID string `json:"paymentSessionId"`
	RedirectURL      string `json:"redirectUrl,omitempty"`
	Simulated        bool   `json:"simulated"`
}

// Gateway opens payment sessions for checkout.
type Gateway interface {
	Initiate(ctx context.Context, amount int, orderID, email, mobile string) (Session, error)
}

type gateway struct {
	upstream *upstream.Client
	logg     *logger.Logger
	metrics  *metrics.StorefrontMetrics
	simulate bool
}

// NewGateway wraps the upstream payment endpoint. When simulate is set a
// failed or absent upstream yields a simulated session instead of an error.
func NewGateway(up *upstream.Client, simulate bool, logg *logger.Logger, met *metrics.StorefrontMetrics) (Gateway, error) {
	if logg == nil {
		return nil, errors.New(errors.CodeInternal, "payment gateway requires a logger")
	}
	return &gateway{upstream: up, logg: logg, metrics: met, simulate: simulate}, nil
}

func (g *gateway) Initiate(ctx context.Context, amount int, orderID, email, mobile string) (Session, error) {
	if amount <= 0 {
		return Session{}, errors.New(errors.CodeValidation, "payment amount must be positive")
	}
	if orderID == "" {
		return Session{}, errors.New(errors.CodeValidation, "order id is required")
	}

	if g.upstream != nil && g.upstream.Enabled() {
		resp, err := g.upstream.InitiatePayment(ctx, upstream.PaymentRequest{
			Amount:  amount,
			OrderID: orderID,
			Email:   email,
			Mobile:  mobile,
		})
		if err == nil {
			if resp.PaymentSessionID == "" && !resp.Success {
				return Session{}, errors.New(errors.CodeDependency, "gateway returned no session")
			}
			return Session{PaymentSessionID: resp.PaymentSessionID, RedirectURL: resp.RedirectURL}, nil
		}
		if !g.simulate {
			return Session{}, errors.Wrap(errors.CodeDependency, err, "initiate payment")
		}
		g.metrics.IncFallback("payments.initiate")
		g.logg.Warn(g.logg.WithOrderID(ctx, orderID), "gateway unreachable, issuing simulated payment session")
	} else if !g.simulate {
		return Session{}, errors.New(errors.CodeDependency, "no payment gateway configured")
	}

	g.metrics.IncSimulatedPayment()
	return Session{
		PaymentSessionID: fmt.Sprintf("pi_sim_%s", uuid.NewString()),
		Simulated:        true,
	}, nil
}
