// Package document lays out and renders quotation PDFs. The layout is a
// declarative list of draw operations so it can be tested without touching
// the PDF backend.
package document

import "time"

// Company holds the fixed issuer details printed on every document.
type Company struct {
	Name         string
	AddressLine1 string
	AddressLine2 string
	PAN          string
	Email        string
	Phone        string
	State        string
	Country      string
}

// DefaultCompany is the issuer identity for all generated quotations.
var DefaultCompany = Company{
	Name:         "ITBIZONE",
	AddressLine1: "No. 39 & 1479, DRLS Plaza Union Bank Building,",
	AddressLine2: "Tumkur Road, Vidya Nagar, T. Dasarahalli, Bengaluru 560057",
	PAN:          "ABCED1234F",
	Email:        "info@itbizone.com",
	Phone:        "+91 98765-43210",
	State:        "Karnataka",
	Country:      "India",
}

// LineItem is one priced row of the services table.
type LineItem struct {
	Name  string
	Price float64
}

// Data carries everything the layout needs from a quotation record.
type Data struct {
	Number             string
	IssuedAt           time.Time
	ClientName         string
	ClientCompany      string
	ClientEmail        string
	Items              []LineItem
	Subtotal           float64
	DiscountPercentage int
	Discount           float64
	Total              float64
	Notes              string
}

// FileName returns the default attachment name for the document.
func (d Data) FileName() string {
	if d.Number == "" {
		return "quotation.pdf"
	}
	return d.Number + ".pdf"
}
