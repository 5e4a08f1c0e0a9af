package handler

import (
	"context"
	"errors"
	"fmt"

	cmd_model "github.com/RoyceAzure/lab/pos/internal/domain/model/command"
	"github.com/RoyceAzure/lab/pos/internal/service"
)

var (
	ErrHandlerNotFound = errors.New("handler not found")
	ErrCommandFormat   = errors.New("command format error")
)

type HandlerFunc func(ctx context.Context, cmd cmd_model.Command) (any, error)

func (f HandlerFunc) HandleCommand(ctx context.Context, cmd cmd_model.Command) (any, error) {
	return f(ctx, cmd)
}

type Handler interface {
	HandleCommand(ctx context.Context, cmd cmd_model.Command) (any, error)
}

// HandlerDispatcher 依命令類型分派
// 收銀台從ctx取得，未登入回傳 service.ErrUnauthenticated
type HandlerDispatcher struct {
	handlers map[cmd_model.CommandType]Handler
}

func NewHandlerDispatcher(handlers map[cmd_model.CommandType]Handler) *HandlerDispatcher {
	return &HandlerDispatcher{handlers: handlers}
}

func (d *HandlerDispatcher) HandleCommand(ctx context.Context, cmd cmd_model.Command) (any, error) {
	handler, ok := d.handlers[cmd.Type()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrHandlerNotFound, cmd.Type())
	}
	return handler.HandleCommand(ctx, cmd)
}

// NewTerminalDispatcher 收銀台上所有命令
func NewTerminalDispatcher(carts *service.CartService, checkout *service.CheckoutService, reports *service.ReportService) *HandlerDispatcher {
	if carts == nil || checkout == nil || reports == nil {
		panic("terminal dispatcher dependency is nil")
	}
	cartHandler := newCartCommandHandler(carts)
	checkoutHandler := newCheckoutCommandHandler(checkout)
	reportHandler := newReportCommandHandler(reports)

	return NewHandlerDispatcher(map[cmd_model.CommandType]Handler{
		cmd_model.CartAddProductCommandName:     HandlerFunc(cartHandler.HandleAddProduct),
		cmd_model.CartAddByBarcodeCommandName:   HandlerFunc(cartHandler.HandleAddByBarcode),
		cmd_model.CartChangeQuantityCommandName: HandlerFunc(cartHandler.HandleChangeQuantity),
		cmd_model.CartRemoveLineCommandName:     HandlerFunc(cartHandler.HandleRemoveLine),
		cmd_model.CartClearCommandName:          HandlerFunc(cartHandler.HandleClear),
		cmd_model.SelectPaymentCommandName:      HandlerFunc(checkoutHandler.HandleSelectPayment),
		cmd_model.CheckoutCommandName:           HandlerFunc(checkoutHandler.HandleCheckout),
		cmd_model.SelectReportRangeCommandName:  HandlerFunc(reportHandler.HandleSelectRange),
	})
}

func formatErr(cmd cmd_model.Command) error {
	return fmt.Errorf("%w: unexpected %T for %s", ErrCommandFormat, cmd, cmd.Type())
}
