package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/braintree-go/braintree-go"

	domainErrors "github.com/polkiloo/coursemart/internal/domain/errors"
	"github.com/polkiloo/coursemart/internal/domain/model"
)

// BraintreeCredentials identifies a merchant account.
type BraintreeCredentials struct {
	Environment string
	MerchantID  string
	PublicKey   string
	PrivateKey  string
}

type transactionCreator interface {
	Create(ctx context.Context, tx *braintree.TransactionRequest) (*braintree.Transaction, error)
}

// BraintreeGateway charges cards as sale transactions submitted for settlement.
type BraintreeGateway struct {
	transactions transactionCreator
	logger       *slog.Logger
}

// NewBraintreeGateway initializes the Braintree SDK gateway.
func NewBraintreeGateway(creds BraintreeCredentials, logger *slog.Logger) *BraintreeGateway {
	env := braintree.Sandbox
	if creds.Environment == "production" {
		env = braintree.Production
	}

	gateway := braintree.New(env, creds.MerchantID, creds.PublicKey, creds.PrivateKey)
	return &BraintreeGateway{transactions: gateway.Transaction(), logger: logger}
}

// Charge creates the sale. Processor declines and gateway rejections are declines, not errors.
func (g *BraintreeGateway) Charge(ctx context.Context, charge model.Charge) (model.ChargeResult, error) {
	cents := charge.Amount.Round(2).Shift(2).IntPart()

	req := &braintree.TransactionRequest{
		Type:    "sale",
		Amount:  braintree.NewDecimal(cents, 2),
		OrderId: charge.OrderID,
		CreditCard: &braintree.CreditCard{
			Number:         charge.Details.CardNumber,
			ExpirationDate: charge.Details.ExpiryDate,
			CVV:            charge.Details.CVV,
			CardholderName: charge.Details.Name,
		},
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true,
		},
	}

	tx, err := g.transactions.Create(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return model.ChargeResult{}, ctxErr
		}
		return model.ChargeResult{}, fmt.Errorf("%w: braintree: %v", domainErrors.ErrGatewayFailure, err)
	}

	switch tx.Status {
	case braintree.TransactionStatusProcessorDeclined,
		braintree.TransactionStatusGatewayRejected,
		braintree.TransactionStatusFailed:
		reason := tx.ProcessorResponseText
		if reason == "" {
			reason = DeclineReason
		}
		g.logger.Info("braintree declined transaction",
			slog.String("order_id", charge.OrderID),
			slog.String("transaction_id", tx.Id),
			slog.String("status", string(tx.Status)),
		)
		return model.ChargeResult{Approved: false, TransactionID: tx.Id, Reason: reason}, nil
	}

	return model.ChargeResult{Approved: true, TransactionID: tx.Id}, nil
}
