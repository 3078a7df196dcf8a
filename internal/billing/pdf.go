package billing

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"campsite-booking/internal/pkg/errs"
	"campsite-booking/internal/usecase/commands"
)

// PDFRenderer produces the booking bill as a single-page A4 PDF.
type PDFRenderer struct{}

func NewPDFRenderer() commands.BillRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Render(data commands.BillData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "Camping des Flots Blancs")
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Booking Bill")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Booking: %s", data.BookingID))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Customer: %s", data.CustomerName))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Site: %s", data.SiteName))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Stay: %s to %s (%d days)", data.StartDate, data.EndDate, data.DayCount))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Persons: %d", data.Headcount))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Equipment: %s", data.Equipment))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Service: %s", data.Service))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Loyalty discount: %s", data.Discount))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %d EUR", data.TotalPrice))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Deposit: %d EUR", data.DepositPrice))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Remaining due: %d EUR", data.RemainingDue))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errs.Wrap(err, "failed to render bill PDF")
	}
	return buf.Bytes(), nil
}
