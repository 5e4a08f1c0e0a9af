package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/constants"
	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/RoyceAzure/lab/pos/internal/infra/report"
)

type ReportService struct {
	lowStockThreshold atomic.Int64
	now               Clock
}

func NewReportService(lowStockThreshold int, now Clock) *ReportService {
	if now == nil {
		now = time.Now
	}
	s := &ReportService{now: now}
	s.SetLowStockThreshold(lowStockThreshold)
	return s
}

// SetLowStockThreshold 設定檔熱更新時呼叫，<=0 用預設值
func (s *ReportService) SetLowStockThreshold(n int) {
	if n <= 0 {
		n = constants.DefaultLowStockThreshold
	}
	s.lowStockThreshold.Store(int64(n))
}

func (s *ReportService) LowStockThreshold() int {
	return int(s.lowStockThreshold.Load())
}

// SelectRange 切換報表區間並重算
// 錯誤:
//   - ErrInvalidArgument: 不支援的區間
func (s *ReportService) SelectRange(ctx context.Context, t *Terminal, rng string) (model.SalesReport, error) {
	r, err := model.ParseTimeRange(rng)
	if err != nil {
		return model.SalesReport{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.reportRange = r
	t.report = AggregateSales(t.sales, r, s.now())
	return t.report, nil
}

// Report 目前區間的報表，每次以現在時間重算
func (s *ReportService) Report(ctx context.Context, t *Terminal) model.SalesReport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.report = AggregateSales(t.sales, t.reportRange, s.now())
	return t.report
}

func (s *ReportService) Dashboard(ctx context.Context, t *Terminal) model.Dashboard {
	t.mu.Lock()
	today := AggregateSales(t.sales, model.RangeToday, s.now())
	t.mu.Unlock()

	return model.Dashboard{
		TotalProducts:    t.catalog.Len(),
		LowStockProducts: t.catalog.LowStockCount(s.LowStockThreshold()),
		TodaySales:       today.SaleCount,
		TodayRevenue:     today.Revenue,
	}
}

// ExportPDF 目前區間報表輸出PDF
func (s *ReportService) ExportPDF(ctx context.Context, t *Terminal) ([]byte, error) {
	return report.SalesReportPDF(s.Report(ctx, t))
}
