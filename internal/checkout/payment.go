package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/arnoldart/shophub/internal/domain"
)

type ChargeRequest struct {
	OrderID  string
	Method   domain.PaymentMethod
	Amount   float64
	Currency string
}

type ChargeResult struct {
	TransactionID string
	Declined      bool
	Reason        string
}

// PaymentGateway is the external collaborator behind Submit. A transport
// error means the charge outcome is unknown; a Declined result is a settled
// refusal.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

// ChargeOutcome decides how a simulated charge settles. Injectable so tests
// control the result.
type ChargeOutcome interface {
	Outcome() (declined bool, reason string)
}

type AlwaysApprove struct{}

func (AlwaysApprove) Outcome() (bool, string) { return false, "" }

// FixedOutcome settles every charge the same way.
type FixedOutcome struct {
	Declined bool
	Reason   string
}

func (f FixedOutcome) Outcome() (bool, string) { return f.Declined, f.Reason }

// SimulatedGateway settles after a fixed delay, standing in for a real
// payment call. The delay waits on the context: cancellation (the user
// navigating away) aborts the charge instead of settling it later.
type SimulatedGateway struct {
	settleDelay time.Duration
	outcome     ChargeOutcome
}

func NewSimulatedGateway(settleDelay time.Duration, outcome ChargeOutcome) *SimulatedGateway {
	return &SimulatedGateway{
		settleDelay: settleDelay,
		outcome:     outcome,
	}
}

func (g *SimulatedGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	timer := time.NewTimer(g.settleDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	declined, reason := g.outcome.Outcome()
	return &ChargeResult{
		TransactionID: fmt.Sprintf("TXN-%d", time.Now().UnixNano()),
		Declined:      declined,
		Reason:        reason,
	}, nil
}
