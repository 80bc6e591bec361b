package document

import (
	"fmt"
	"os"
)

// A4 geometry in points, with the uniform page margin used throughout.
const (
	pageWidth  = 595.28
	pageHeight = 841.89
	margin     = 50.0

	contentWidth = pageWidth - 2*margin

	tableHeaderHeight = 30.0
	tableRowHeight    = 28.0
	costRowHeight     = 22.0
	infoBoxHeight     = 120.0
)

// RGB is a 24-bit color.
type RGB struct {
	R, G, B int
}

var (
	colorAccent      = RGB{R: 139, G: 92, B: 246}
	colorInk         = RGB{R: 31, G: 41, B: 55}
	colorMuted       = RGB{R: 107, G: 114, B: 128}
	colorTerms       = RGB{R: 75, G: 85, B: 99}
	colorBoxFill     = RGB{R: 249, G: 250, B: 251}
	colorBorder      = RGB{R: 229, G: 231, B: 235}
	colorTableBorder = RGB{R: 209, G: 213, B: 219}
	colorRowAlt      = RGB{R: 248, G: 250, B: 252}
	colorTotalFill   = RGB{R: 243, G: 244, B: 246}
	colorGreen       = RGB{R: 16, G: 185, B: 129}
	colorWhite       = RGB{R: 255, G: 255, B: 255}
	colorBlack       = RGB{}
)

// Op is one drawing operation of the document layout.
type Op interface {
	isOp()
}

// RectOp draws a rectangle, optionally rounded, filled and/or stroked.
type RectOp struct {
	X, Y, W, H float64
	Radius     float64
	Fill       *RGB
	Stroke     *RGB
	LineWidth  float64
}

// LineOp draws a straight line segment.
type LineOp struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Color          RGB
}

// TextOp places text with its top-left corner at X,Y. W constrains the text
// box for centered/right alignment and wrapping.
type TextOp struct {
	X, Y, W float64
	Text    string
	Size    float64
	Bold    bool
	Color   RGB
	Align   string // "L", "C" or "R"; empty means "L"
	Wrap    bool
}

// ImageOp places an image asset scaled to width W.
type ImageOp struct {
	Path    string
	X, Y, W float64
}

// PageBreakOp starts a new page.
type PageBreakOp struct{}

func (RectOp) isOp()      {}
func (LineOp) isOp()      {}
func (TextOp) isOp()      {}
func (ImageOp) isOp()     {}
func (PageBreakOp) isOp() {}

var termsLines = []string{
	"1. Please pay within 15 days from the date of invoice, overdue interest at 14% will be charged on delayed payments.",
	"2. Please quote invoice number when remitting funds.",
}

const defaultNotes = "It is a long established fact that a reader will be distracted by the " +
	"readable content of a page when looking at its layout. The point of using Lorem Ipsum " +
	"is that it has a more-or-less normal distribution of letters, as opposed to using " +
	"'Content here, content here.'"

// Layout produces the ordered draw operations for a quotation document. The
// logo asset is optional: when the file is absent the issuer name is rendered
// as text instead, so a missing asset can never fail the document.
func Layout(d Data, company Company, logoPath string) []Op {
	var ops []Op

	y := margin

	// Title block.
	ops = append(ops, TextOp{X: margin, Y: y, Text: "Quotation", Size: 28, Bold: true, Color: colorAccent})
	if logoPath != "" && assetExists(logoPath) {
		ops = append(ops, ImageOp{Path: logoPath, X: pageWidth - 180, Y: y - 15, W: 130})
	} else {
		ops = append(ops, TextOp{X: pageWidth - 120, Y: y + 5, Text: company.Name, Size: 16, Bold: true, Color: colorInk})
	}
	y += 50

	// Metadata row.
	ops = append(ops,
		TextOp{X: margin, Y: y, Text: "Quotation#", Size: 10, Color: colorMuted},
		TextOp{X: 120, Y: y, Text: d.Number, Size: 10, Bold: true, Color: colorInk},
		TextOp{X: 250, Y: y, Text: "Quotation Date", Size: 10, Color: colorMuted},
		TextOp{X: 340, Y: y, Text: FormatIssueDate(d.IssuedAt), Size: 10, Bold: true, Color: colorInk},
	)
	y += 30

	ops = append(ops, infoBoxes(d, company, y)...)

	// Supply location row sits below the boxes.
	supplyY := y + infoBoxHeight + 20
	ops = append(ops,
		TextOp{X: margin, Y: supplyY, Text: "Place of Supply", Size: 10, Color: colorMuted},
		TextOp{X: 150, Y: supplyY, Text: company.State, Size: 10, Bold: true, Color: colorInk},
		TextOp{X: 300, Y: supplyY, Text: "Country of Supply", Size: 10, Color: colorMuted},
		TextOp{X: 420, Y: supplyY, Text: company.Country, Size: 10, Bold: true, Color: colorInk},
	)
	y += 180

	tableOps, y := itemTable(d.Items, y)
	ops = append(ops, tableOps...)
	y += 20

	// The totals region must not collide with the footer.
	if y+220 > pageHeight-130 {
		ops = append(ops, PageBreakOp{})
		y = margin
	}
	ops = append(ops, totalsRegion(d, y)...)

	ops = append(ops, footer(company)...)
	return ops
}

func infoBoxes(d Data, company Company, y float64) []Op {
	boxWidth := (contentWidth - 30) / 2
	rightX := margin + boxWidth + 15

	clientCompany := d.ClientCompany
	if clientCompany == "" {
		clientCompany = "-"
	}

	return []Op{
		RectOp{X: margin, Y: y, W: boxWidth, H: infoBoxHeight, Radius: 5, Fill: &colorBoxFill, Stroke: &colorBorder, LineWidth: 1},
		TextOp{X: margin + 15, Y: y + 15, Text: "Quotation by", Size: 11, Bold: true, Color: colorInk},
		TextOp{X: margin + 15, Y: y + 35, Text: company.Name, Size: 10, Bold: true, Color: colorInk},
		TextOp{X: margin + 15, Y: y + 55, Text: "Address", Size: 9, Color: colorMuted},
		TextOp{X: margin + 15, Y: y + 70, Text: company.AddressLine1, Size: 8, Color: colorMuted},
		TextOp{X: margin + 15, Y: y + 82, Text: company.AddressLine2, Size: 8, Color: colorMuted},
		TextOp{X: margin + 15, Y: y + 98, Text: "PAN", Size: 9, Color: colorMuted},
		TextOp{X: margin + 50, Y: y + 98, Text: company.PAN, Size: 8, Bold: true, Color: colorInk},

		RectOp{X: rightX, Y: y, W: boxWidth, H: infoBoxHeight, Radius: 5, Fill: &colorBoxFill, Stroke: &colorBorder, LineWidth: 1},
		TextOp{X: rightX + 15, Y: y + 15, Text: "Quotation to", Size: 11, Bold: true, Color: colorInk},
		TextOp{X: rightX + 15, Y: y + 35, Text: d.ClientName, Size: 10, Bold: true, Color: colorInk},
		TextOp{X: rightX + 15, Y: y + 55, Text: "Address", Size: 9, Color: colorMuted},
		TextOp{X: rightX + 15, Y: y + 70, Text: clientCompany, Size: 8, Color: colorMuted},
		TextOp{X: rightX + 15, Y: y + 82, Text: d.ClientEmail, Size: 8, Color: colorMuted},
	}
}

func headerBar(y float64) []Op {
	return []Op{
		RectOp{X: margin, Y: y, W: contentWidth, H: tableHeaderHeight, Fill: &colorAccent},
		TextOp{X: margin + 15, Y: y + 8, W: 250, Text: "Item# Item description", Size: 11, Bold: true, Color: colorWhite},
		TextOp{X: margin + 270, Y: y + 8, W: 40, Text: "Qty.", Size: 11, Bold: true, Color: colorWhite, Align: "C"},
		TextOp{X: margin + 320, Y: y + 8, W: 80, Text: "Rate", Size: 11, Bold: true, Color: colorWhite, Align: "C"},
		TextOp{X: margin + 410, Y: y + 8, W: 90, Text: "Amount", Size: 11, Bold: true, Color: colorWhite, Align: "C"},
	}
}

// itemTable lays out the line-item table starting at y, breaking onto a new
// page when rows would run into the footer. It returns the y position just
// below the table.
func itemTable(items []LineItem, y float64) ([]Op, float64) {
	ops := headerBar(y)
	top := y
	y += tableHeaderHeight

	closeSegment := func() {
		ops = append(ops, RectOp{X: margin, Y: top, W: contentWidth, H: y - top, Stroke: &colorTableBorder, LineWidth: 1})
	}

	for i, item := range items {
		if y+tableRowHeight > pageHeight-150 {
			closeSegment()
			ops = append(ops, PageBreakOp{})
			y = margin
			ops = append(ops, headerBar(y)...)
			top = y
			y += tableHeaderHeight
		}

		rowFill := colorWhite
		if i%2 == 1 {
			rowFill = colorRowAlt
		}
		price := FormatINR(item.Price)
		ops = append(ops,
			RectOp{X: margin, Y: y, W: contentWidth, H: tableRowHeight, Fill: &rowFill},
			TextOp{X: margin + 15, Y: y + 8, Text: fmt.Sprintf("%d.", i+1), Size: 9, Color: colorInk},
			TextOp{X: margin + 35, Y: y + 8, W: 230, Text: item.Name, Size: 9, Color: colorInk},
			TextOp{X: margin + 270, Y: y + 8, W: 40, Text: "1", Size: 9, Color: colorInk, Align: "C"},
			TextOp{X: margin + 320, Y: y + 8, W: 80, Text: price, Size: 9, Color: colorInk, Align: "C"},
			TextOp{X: margin + 410, Y: y + 8, W: 90, Text: price, Size: 9, Bold: true, Color: colorInk, Align: "C"},
			LineOp{X1: margin, Y1: y + tableRowHeight, X2: margin + contentWidth, Y2: y + tableRowHeight, Width: 0.5, Color: colorBorder},
		)
		y += tableRowHeight
	}

	closeSegment()
	return ops, y
}

func totalsRegion(d Data, y float64) []Op {
	ops := []Op{
		TextOp{X: margin, Y: y, Text: "Terms and Conditions", Size: 11, Bold: true, Color: colorAccent},
	}

	termsY := y + 22
	for _, term := range termsLines {
		ops = append(ops, TextOp{X: margin, Y: termsY, W: 240, Text: term, Size: 9, Color: colorTerms, Wrap: true})
		termsY += 25
	}

	notes := d.Notes
	if notes == "" {
		notes = defaultNotes
	}
	ops = append(ops,
		TextOp{X: margin, Y: termsY + 15, Text: "Additional Notes", Size: 11, Bold: true, Color: colorAccent},
		TextOp{X: margin, Y: termsY + 35, W: 240, Text: notes, Size: 9, Color: colorTerms, Wrap: true},
	)

	// Costing mini-table on the right.
	const (
		costX = 320.0
		costW = 230.0
	)
	costY := y + 20
	tableHeight := costRowHeight*3 + 40

	ops = append(ops, RectOp{X: costX, Y: costY, W: costW, H: tableHeight, Stroke: &colorTableBorder, LineWidth: 1})

	ops = append(ops,
		RectOp{X: costX, Y: costY, W: costW, H: costRowHeight, Stroke: &colorBorder, LineWidth: 1},
		TextOp{X: costX + 10, Y: costY + 6, Text: "Sub Total", Size: 10, Color: colorInk},
		TextOp{X: costX + costW - 85, Y: costY + 6, W: 75, Text: FormatINR(d.Subtotal), Size: 10, Bold: true, Color: colorInk, Align: "R"},
	)
	costY += costRowHeight

	ops = append(ops,
		RectOp{X: costX, Y: costY, W: costW, H: costRowHeight, Stroke: &colorBorder, LineWidth: 1},
		TextOp{X: costX + 10, Y: costY + 6, Text: fmt.Sprintf("Discount(%d%%)", d.DiscountPercentage), Size: 10, Color: colorGreen},
		TextOp{X: costX + costW - 85, Y: costY + 6, W: 75, Text: "- " + FormatINR(d.Discount), Size: 10, Bold: true, Color: colorGreen, Align: "R"},
	)
	costY += costRowHeight

	ops = append(ops,
		RectOp{X: costX, Y: costY, W: costW, H: costRowHeight, Fill: &colorTotalFill, Stroke: &colorBorder, LineWidth: 1},
		TextOp{X: costX + 10, Y: costY + 6, Text: "Total", Size: 12, Bold: true, Color: colorInk},
		TextOp{X: costX + costW - 85, Y: costY + 4, W: 75, Text: FormatINR(d.Total), Size: 14, Bold: true, Color: colorInk, Align: "R"},
	)
	costY += costRowHeight + 5

	words := AmountInWords(int64(d.Total))
	ops = append(ops,
		TextOp{X: costX + 10, Y: costY, Text: "Invoice Total (in words)", Size: 9, Color: colorMuted},
		TextOp{X: costX + 10, Y: costY + 15, W: costW - 20, Text: words + " Rupees Only", Size: 9, Bold: true, Color: colorInk, Wrap: true},
	)

	return ops
}

func footer(company Company) []Op {
	footerY := pageHeight - 120
	return []Op{
		TextOp{X: margin, Y: footerY, Text: "For any enquiries, email us on " + company.Email + " or", Size: 9, Color: colorMuted},
		TextOp{X: margin, Y: footerY + 12, Text: "call us on " + company.Phone, Size: 9, Color: colorMuted},
		LineOp{X1: pageWidth - 150, Y1: footerY + 25, X2: pageWidth - 50, Y2: footerY + 25, Width: 1, Color: colorBlack},
		TextOp{X: pageWidth - 150, Y: footerY + 40, Text: "Authorized Signature", Size: 10, Color: colorInk},
	}
}

func assetExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
