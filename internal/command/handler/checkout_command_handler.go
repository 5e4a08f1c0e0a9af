package handler

import (
	"context"

	cmd_model "github.com/RoyceAzure/lab/pos/internal/domain/model/command"
	"github.com/RoyceAzure/lab/pos/internal/service"
)

type checkoutCommandHandler struct {
	checkout *service.CheckoutService
}

func newCheckoutCommandHandler(checkout *service.CheckoutService) *checkoutCommandHandler {
	return &checkoutCommandHandler{checkout: checkout}
}

// HandleSelectPayment 回傳 service.CheckoutStatus
func (h *checkoutCommandHandler) HandleSelectPayment(ctx context.Context, cmd cmd_model.Command) (any, error) {
	c, ok := cmd.(*cmd_model.SelectPaymentCommand)
	if !ok {
		return nil, formatErr(cmd)
	}
	t, err := service.TerminalFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return h.checkout.SelectPayment(ctx, t, string(c.Method), c.Received)
}

// HandleCheckout 回傳 *service.CheckoutResult
func (h *checkoutCommandHandler) HandleCheckout(ctx context.Context, cmd cmd_model.Command) (any, error) {
	if _, ok := cmd.(*cmd_model.CheckoutCommand); !ok {
		return nil, formatErr(cmd)
	}
	t, err := service.TerminalFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return h.checkout.Checkout(ctx, t)
}
