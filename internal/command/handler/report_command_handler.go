package handler

import (
	"context"

	cmd_model "github.com/RoyceAzure/lab/pos/internal/domain/model/command"
	"github.com/RoyceAzure/lab/pos/internal/service"
)

type reportCommandHandler struct {
	reports *service.ReportService
}

func newReportCommandHandler(reports *service.ReportService) *reportCommandHandler {
	return &reportCommandHandler{reports: reports}
}

func (h *reportCommandHandler) HandleSelectRange(ctx context.Context, cmd cmd_model.Command) (any, error) {
	c, ok := cmd.(*cmd_model.SelectReportRangeCommand)
	if !ok {
		return nil, formatErr(cmd)
	}
	t, err := service.TerminalFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return h.reports.SelectRange(ctx, t, string(c.Range))
}
