package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/RoyceAzure/lab/pos/internal/api/dto"
	"github.com/RoyceAzure/lab/pos/internal/api/response"
	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	cmd_model "github.com/RoyceAzure/lab/pos/internal/domain/model/command"
	"github.com/RoyceAzure/lab/pos/internal/service"
)

type CommandDispatcher interface {
	HandleCommand(ctx context.Context, cmd cmd_model.Command) (any, error)
}

type CartViewer interface {
	View(ctx context.Context, t *service.Terminal) service.CartView
}

type ReportViewer interface {
	Report(ctx context.Context, t *service.Terminal) model.SalesReport
	Dashboard(ctx context.Context, t *service.Terminal) model.Dashboard
	ExportPDF(ctx context.Context, t *service.Terminal) ([]byte, error)
}

// TerminalHandler 收銀台操作
// 寫入類動作轉成命令交給 dispatcher，讀取直接查收銀台狀態
type TerminalHandler struct {
	dispatcher CommandDispatcher
	carts      CartViewer
	reports    ReportViewer
}

func NewTerminalHandler(dispatcher CommandDispatcher, carts CartViewer, reports ReportViewer) *TerminalHandler {
	if dispatcher == nil || carts == nil || reports == nil {
		panic("terminal handler dependency is nil")
	}
	return &TerminalHandler{dispatcher: dispatcher, carts: carts, reports: reports}
}

func (h *TerminalHandler) dispatch(w http.ResponseWriter, r *http.Request, cmd cmd_model.Command) {
	res, err := h.dispatcher.HandleCommand(r.Context(), cmd)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, res)
}

// GET /cart
func (h *TerminalHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	t, err := service.TerminalFromContext(r.Context())
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, h.carts.View(r.Context(), t))
}

// POST /cart/items
func (h *TerminalHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var in dto.AddItemDTO
	if err := decodeJSON(r, &in); err != nil {
		response.ErrorJSON(w, err)
		return
	}
	h.dispatch(w, r, cmd_model.NewCartAddProductCommand(in.ProductID))
}

// POST /cart/barcode
func (h *TerminalHandler) AddByBarcode(w http.ResponseWriter, r *http.Request) {
	var in dto.BarcodeDTO
	if err := decodeJSON(r, &in); err != nil {
		response.ErrorJSON(w, err)
		return
	}
	h.dispatch(w, r, cmd_model.NewCartAddByBarcodeCommand(in.Barcode))
}

// PATCH /cart/items/{id}
func (h *TerminalHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	var in dto.ChangeQuantityDTO
	if err := decodeJSON(r, &in); err != nil {
		response.ErrorJSON(w, err)
		return
	}
	h.dispatch(w, r, cmd_model.NewCartChangeQuantityCommand(id, in.Delta))
}

// DELETE /cart/items/{id}
func (h *TerminalHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	h.dispatch(w, r, cmd_model.NewCartRemoveLineCommand(id))
}

// DELETE /cart
func (h *TerminalHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, cmd_model.NewCartClearCommand())
}

// POST /checkout/payment
func (h *TerminalHandler) SelectPayment(w http.ResponseWriter, r *http.Request) {
	var in dto.SelectPaymentDTO
	if err := decodeJSON(r, &in); err != nil {
		response.ErrorJSON(w, err)
		return
	}
	h.dispatch(w, r, cmd_model.NewSelectPaymentCommand(model.PaymentMethod(in.Method), in.Received))
}

// POST /checkout
func (h *TerminalHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, cmd_model.NewCheckoutCommand())
}

// GET /checkout/state
func (h *TerminalHandler) CheckoutState(w http.ResponseWriter, r *http.Request) {
	t, err := service.TerminalFromContext(r.Context())
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, t.CheckoutStatus())
}

// GET /dashboard
func (h *TerminalHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	t, err := service.TerminalFromContext(r.Context())
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, h.reports.Dashboard(r.Context(), t))
}

// selectRange 有帶 range 才切換區間
func (h *TerminalHandler) selectRange(r *http.Request) error {
	rng := r.URL.Query().Get("range")
	if rng == "" {
		return nil
	}
	_, err := h.dispatcher.HandleCommand(r.Context(), cmd_model.NewSelectReportRangeCommand(model.TimeRange(rng)))
	return err
}

// GET /reports?range=
func (h *TerminalHandler) Report(w http.ResponseWriter, r *http.Request) {
	t, err := service.TerminalFromContext(r.Context())
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	if err := h.selectRange(r); err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, h.reports.Report(r.Context(), t))
}

// GET /reports/pdf?range=
func (h *TerminalHandler) ReportPDF(w http.ResponseWriter, r *http.Request) {
	t, err := service.TerminalFromContext(r.Context())
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	if err := h.selectRange(r); err != nil {
		response.ErrorJSON(w, err)
		return
	}
	pdf, err := h.reports.ExportPDF(r.Context(), t)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=sales-report-%s.pdf", t.ReportRange()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
