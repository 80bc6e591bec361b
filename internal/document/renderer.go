package document

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"
)

const fontFamily = "Helvetica"

// Renderer walks a layout op list and produces PDF bytes via fpdf.
type Renderer struct{}

// NewRenderer constructs the PDF backend.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render draws the ops onto an A4 page set and returns the finished document.
// The whole document is buffered in memory; nothing is emitted on failure.
// Cancellation of ctx aborts rendering between operations.
func (r *Renderer) Render(ctx context.Context, ops []Op) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(margin, margin, margin)
	pdf.AddPage()

	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch o := op.(type) {
		case RectOp:
			drawRect(pdf, o)
		case LineOp:
			pdf.SetDrawColor(o.Color.R, o.Color.G, o.Color.B)
			pdf.SetLineWidth(o.Width)
			pdf.Line(o.X1, o.Y1, o.X2, o.Y2)
		case TextOp:
			drawText(pdf, o)
		case ImageOp:
			opts := fpdf.ImageOptions{ReadDpi: true}
			pdf.ImageOptions(o.Path, o.X, o.Y, o.W, 0, false, opts, 0, "")
		case PageBreakOp:
			pdf.AddPage()
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("document: render: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("document: output: %w", err)
	}
	return buf.Bytes(), nil
}

func drawRect(pdf *fpdf.Fpdf, o RectOp) {
	style := ""
	if o.Fill != nil {
		pdf.SetFillColor(o.Fill.R, o.Fill.G, o.Fill.B)
		style += "F"
	}
	if o.Stroke != nil {
		pdf.SetDrawColor(o.Stroke.R, o.Stroke.G, o.Stroke.B)
		pdf.SetLineWidth(o.LineWidth)
		style += "D"
	}
	if style == "" {
		style = "D"
	}
	if o.Radius > 0 {
		pdf.RoundedRect(o.X, o.Y, o.W, o.H, o.Radius, "1234", style)
		return
	}
	pdf.Rect(o.X, o.Y, o.W, o.H, style)
}

func drawText(pdf *fpdf.Fpdf, o TextOp) {
	style := ""
	if o.Bold {
		style = "B"
	}
	pdf.SetFont(fontFamily, style, o.Size)
	pdf.SetTextColor(o.Color.R, o.Color.G, o.Color.B)

	align := o.Align
	if align == "" {
		align = "L"
	}
	lineHeight := o.Size + 3

	pdf.SetXY(o.X, o.Y)
	if o.Wrap && o.W > 0 {
		pdf.MultiCell(o.W, lineHeight, o.Text, "", align, false)
		return
	}
	width := o.W
	if width == 0 {
		width = pdf.GetStringWidth(o.Text) + 2
	}
	pdf.CellFormat(width, lineHeight, o.Text, "", 0, align, false, 0, "")
}
