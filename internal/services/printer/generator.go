package printer

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
	"github.com/xelth-com/eckrecongo/internal/models"
)

// GenerateSessionSheetPDF renders a printable counting sheet for a
// session: one row per expected item with a QR code operators can scan
// to select the line on a handheld.
func GenerateSessionSheetPDF(session *models.Session) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Session %s", session.Number), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Kind: %s    Status: %s", session.Kind, session.Status), "", 1, "L", false, 0, "")
	if session.Counterpart != "" {
		pdf.CellFormat(0, 6, fmt.Sprintf("Counterpart: %s", session.Counterpart), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Table header
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(20, 8, "QR", "1", 0, "C", false, 0, "")
	pdf.CellFormat(85, 8, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "SKU", "1", 0, "L", false, 0, "")
	pdf.CellFormat(22, 8, "Expected", "1", 0, "C", false, 0, "")
	pdf.CellFormat(22, 8, "Scanned", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	for i, item := range session.Items {
		rowH := 18.0
		x, y := pdf.GetXY()

		// QR encodes session and item ids for handheld line selection
		qrContent := fmt.Sprintf("ECKR/%d/%d", session.ID, item.ID)
		qrPng, err := qrcode.Encode(qrContent, qrcode.Low, 128)
		if err != nil {
			return nil, fmt.Errorf("failed to encode QR for item %d: %w", item.ID, err)
		}

		imgName := fmt.Sprintf("qr_item_%d", i)
		imgOptions := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		_ = pdf.RegisterImageOptionsReader(imgName, imgOptions, bytes.NewReader(qrPng))

		pdf.CellFormat(20, rowH, "", "1", 0, "C", false, 0, "")
		pdf.ImageOptions(imgName, x+2, y+1, rowH-2, rowH-2, false, imgOptions, 0, "")

		pdf.CellFormat(85, rowH, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, rowH, item.SKU, "1", 0, "L", false, 0, "")
		pdf.CellFormat(22, rowH, fmt.Sprintf("%d", item.ExpectedQuantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(22, rowH, fmt.Sprintf("%d", item.ScannedQuantity), "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateAssetLabelPDF renders a single A7 label with the asset's
// serialized QR code and serial number text
func GenerateAssetLabelPDF(asset *models.Asset, code string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A7", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	qrPng, err := qrcode.Encode(code, qrcode.Medium, 256)
	if err != nil {
		return nil, err
	}

	imgOptions := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	_ = pdf.RegisterImageOptionsReader("qr_asset", imgOptions, bytes.NewReader(qrPng))
	pdf.ImageOptions("qr_asset", 5, 5, 45, 45, false, imgOptions, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.SetXY(55, 20)
	pdf.CellFormat(0, 8, asset.SerialNumber, "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
