package printer

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
)

// LabelConfig holds configuration for PDF generation
type LabelConfig struct {
	// Codes are the location codes or SKUs to print, one label each
	Codes      []string `json:"codes"`
	Cols       int      `json:"cols"`
	Rows       int      `json:"rows"`
	MarginTop  float64  `json:"marginTop"`
	MarginLeft float64  `json:"marginLeft"`
	GapX       float64  `json:"gapX"`
	GapY       float64  `json:"gapY"`
}

func (cfg *LabelConfig) applyDefaults() {
	if cfg.Cols <= 0 {
		cfg.Cols = 3
	}
	if cfg.Rows <= 0 {
		cfg.Rows = 8
	}
	if cfg.MarginTop <= 0 {
		cfg.MarginTop = 10
	}
	if cfg.MarginLeft <= 0 {
		cfg.MarginLeft = 10
	}
}

// GenerateLabelsPDF creates an A4 sheet of QR labels, one per code.
func GenerateLabelsPDF(cfg LabelConfig) ([]byte, error) {
	if len(cfg.Codes) == 0 {
		return nil, fmt.Errorf("no codes to print")
	}
	cfg.applyDefaults()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Arial", "B", 9)

	pageWidth, pageHeight := 210.0, 297.0
	totalGapX := float64(cfg.Cols-1) * cfg.GapX
	totalGapY := float64(cfg.Rows-1) * cfg.GapY

	availW := pageWidth - (cfg.MarginLeft * 2)
	availH := pageHeight - (cfg.MarginTop * 2)

	labelW := (availW - totalGapX) / float64(cfg.Cols)
	labelH := (availH - totalGapY) / float64(cfg.Rows)

	labelsPerPage := cfg.Cols * cfg.Rows

	for i, code := range cfg.Codes {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		indexOnPage := i % labelsPerPage
		col := indexOnPage % cfg.Cols
		row := indexOnPage / cfg.Cols

		x := cfg.MarginLeft + float64(col)*(labelW+cfg.GapX)
		y := cfg.MarginTop + float64(row)*(labelH+cfg.GapY)

		qrPng, err := qrcode.Encode(code, qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("encode qr for %q: %w", code, err)
		}

		imgName := fmt.Sprintf("qr-%d", i)
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(qrPng))

		// QR square on the left, code text beside it
		qrSize := labelH * 0.8
		if qrSize > labelW*0.5 {
			qrSize = labelW * 0.5
		}
		pdf.ImageOptions(imgName, x+1, y+(labelH-qrSize)/2, qrSize, qrSize, false, opts, 0, "")

		pdf.SetXY(x+qrSize+2, y)
		pdf.CellFormat(labelW-qrSize-3, labelH, code, "", 0, "LM", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
