package document

import "context"

// Generator ties the declarative layout to a rendering backend.
type Generator struct {
	company  Company
	logoPath string
	backend  Backend
}

// Backend renders a finished op list into document bytes.
type Backend interface {
	Render(ctx context.Context, ops []Op) ([]byte, error)
}

// NewGenerator constructs a Generator for the given issuer. logoPath may be
// empty or point at a missing asset; the layout falls back to text.
func NewGenerator(company Company, logoPath string, backend Backend) *Generator {
	if backend == nil {
		backend = NewRenderer()
	}
	return &Generator{company: company, logoPath: logoPath, backend: backend}
}

// Generate produces the PDF bytes and the default attachment name.
func (g *Generator) Generate(ctx context.Context, d Data) ([]byte, string, error) {
	ops := Layout(d, g.company, g.logoPath)
	out, err := g.backend.Render(ctx, ops)
	if err != nil {
		return nil, "", err
	}
	return out, d.FileName(), nil
}
