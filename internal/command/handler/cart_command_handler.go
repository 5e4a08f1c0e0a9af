package handler

import (
	"context"

	cmd_model "github.com/RoyceAzure/lab/pos/internal/domain/model/command"
	"github.com/RoyceAzure/lab/pos/internal/service"
)

// 購物車命令處理器，回傳 service.CartView
type cartCommandHandler struct {
	carts *service.CartService
}

func newCartCommandHandler(carts *service.CartService) *cartCommandHandler {
	return &cartCommandHandler{carts: carts}
}

func (h *cartCommandHandler) HandleAddProduct(ctx context.Context, cmd cmd_model.Command) (any, error) {
	c, ok := cmd.(*cmd_model.CartAddProductCommand)
	if !ok {
		return nil, formatErr(cmd)
	}
	t, err := service.TerminalFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return h.carts.AddProduct(ctx, t, c.ProductID)
}

func (h *cartCommandHandler) HandleAddByBarcode(ctx context.Context, cmd cmd_model.Command) (any, error) {
	c, ok := cmd.(*cmd_model.CartAddByBarcodeCommand)
	if !ok {
		return nil, formatErr(cmd)
	}
	t, err := service.TerminalFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return h.carts.AddByBarcode(ctx, t, c.Barcode)
}

func (h *cartCommandHandler) HandleChangeQuantity(ctx context.Context, cmd cmd_model.Command) (any, error) {
	c, ok := cmd.(*cmd_model.CartChangeQuantityCommand)
	if !ok {
		return nil, formatErr(cmd)
	}
	t, err := service.TerminalFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return h.carts.ChangeQuantity(ctx, t, c.ProductID, c.Delta)
}

func (h *cartCommandHandler) HandleRemoveLine(ctx context.Context, cmd cmd_model.Command) (any, error) {
	c, ok := cmd.(*cmd_model.CartRemoveLineCommand)
	if !ok {
		return nil, formatErr(cmd)
	}
	t, err := service.TerminalFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return h.carts.RemoveLine(ctx, t, c.ProductID)
}

func (h *cartCommandHandler) HandleClear(ctx context.Context, cmd cmd_model.Command) (any, error) {
	if _, ok := cmd.(*cmd_model.CartClearCommand); !ok {
		return nil, formatErr(cmd)
	}
	t, err := service.TerminalFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return h.carts.Clear(ctx, t)
}
