package reporting

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Certificate renders the registered-farmer certificate as a PDF document.
// Layout mirrors the printed certificate: header, personal, farm, and
// banking sections, with the farmer-code QR image at the bottom.
func (s *Service) Certificate(ctx context.Context, id string) ([]byte, error) {
	farmer, err := s.farmers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("certificate for %s: %w", id, err)
	}

	qrPNG := s.fetchQR(ctx, farmer.FarmerID)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Registered Farmer Certificate", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Centre for Climate Smart Agriculture", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 8, "Registered Farmer Certificate", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 7, "Registered ID: "+farmer.FarmerID, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	writeSection(pdf, "Farmer Information", [][2]string{
		{"NIN", farmer.NIN},
		{"Name", farmer.FullName()},
		{"Email", farmer.Email},
		{"Phone Number", farmer.Phone},
		{"WhatsApp Number", farmer.WhatsappNumber},
		{"Gender", farmer.Gender},
		{"Marital Status", farmer.MaritalStatus},
		{"Highest Qualification", farmer.HighestQualification},
	})

	writeSection(pdf, "Farm Information", [][2]string{
		{"State", farmer.State},
		{"Local Government", farmer.LocalGovernment},
		{"Ward", farmer.Ward},
		{"Polling Unit", farmer.PollingUnit},
		{"Latitude", farmer.Latitude},
		{"Longitude", farmer.Longitude},
		{"Farming Season", farmer.FarmingSeason},
		{"Farm Size", farmer.FarmSize},
	})

	writeSection(pdf, "Banking Information", [][2]string{
		{"Bank Name", farmer.BankName},
		{"Account Name", farmer.AccountName},
		{"Account Number", farmer.AccountNumber},
		{"BVN", farmer.BVN},
	})

	if qrPNG != nil {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, "Farmer Code", "", 1, "C", false, 0, "")

		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("farmer-qr", opts, bytes.NewReader(qrPNG))
		x := (210.0 - 40.0) / 2
		pdf.ImageOptions("farmer-qr", x, pdf.GetY(), 40, 40, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render certificate: %w", err)
	}

	return buf.Bytes(), nil
}

func writeSection(pdf *fpdf.Fpdf, title string, fields [][2]string) {
	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(230, 233, 240)
	pdf.CellFormat(0, 8, title, "", 1, "L", true, 0, "")
	pdf.Ln(1)

	pdf.SetFont("Arial", "", 10)
	for _, field := range fields {
		value := field[1]
		if value == "" {
			value = "-"
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(55, 6, field[0]+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
	}
}
