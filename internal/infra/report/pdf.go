package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/jung-kurt/gofpdf"
)

// RenderSalesReportPDF 輸出A4報表
func RenderSalesReportPDF(w io.Writer, r model.SalesReport) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Sales Report (%s)", r.Range), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, "Generated at "+r.GeneratedAt.Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, "Revenue: $"+r.Revenue.StringFixed(2), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Sales: %d", r.SaleCount), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Units sold: %d", r.UnitsSold), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, "Average sale: $"+r.AverageSale.StringFixed(2), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	tableHeader(pdf, []string{"Category", "Revenue"}, []float64{100, 50})
	pdf.SetFont("Arial", "", 12)
	for _, c := range r.CategoryRevenue {
		pdf.CellFormat(100, 8, tr(c.Category), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, "$"+c.Revenue.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	tableHeader(pdf, []string{"Payment method", "Sales"}, []float64{100, 50})
	pdf.SetFont("Arial", "", 12)
	for _, p := range r.PaymentMethods {
		pdf.CellFormat(100, 8, string(p.Method), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, fmt.Sprintf("%d", p.Count), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(5)

	tableHeader(pdf, []string{"#", "Product", "Quantity", "Revenue"}, []float64{10, 90, 30, 40})
	pdf.SetFont("Arial", "", 12)
	for i, p := range r.TopProducts {
		pdf.CellFormat(10, 8, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(90, 8, tr(p.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%d", p.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 8, "$"+p.Revenue.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render report pdf: %w", err)
	}
	return pdf.Output(w)
}

func tableHeader(pdf *gofpdf.Fpdf, titles []string, widths []float64) {
	pdf.SetFont("Arial", "B", 12)
	for i, title := range titles {
		ln := 0
		if i == len(titles)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], 8, title, "1", ln, "C", false, 0, "")
	}
}

// SalesReportPDF 回傳整份PDF
func SalesReportPDF(r model.SalesReport) ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderSalesReportPDF(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
