package types

import "strings"

// Printer renders a Type as display text for hover and completion details.
type Printer interface {
	Print(t Type) string
}

// NewPrinter returns the default printer, which uses the language's own
// surface syntax: `fn(Int, String) -> Bool`, `List(a)`, `#(Int, Float)`.
func NewPrinter() Printer {
	return defaultPrinter{}
}

type defaultPrinter struct{}

func (p defaultPrinter) Print(t Type) string {
	var b strings.Builder
	p.write(&b, t)
	return b.String()
}

func (p defaultPrinter) write(b *strings.Builder, t Type) {
	switch t := t.(type) {
	case *Named:
		b.WriteString(t.Name)
		if len(t.Args) > 0 {
			b.WriteByte('(')
			p.writeList(b, t.Args)
			b.WriteByte(')')
		}

	case *Fn:
		b.WriteString("fn(")
		p.writeList(b, t.Args)
		b.WriteString(") -> ")
		p.write(b, t.Return)

	case *Var:
		b.WriteString(t.Name)

	case *Tuple:
		b.WriteString("#(")
		p.writeList(b, t.Elems)
		b.WriteByte(')')
	}
}

func (p defaultPrinter) writeList(b *strings.Builder, ts []Type) {
	for i, t := range ts {
		if i > 0 {
			b.WriteString(", ")
		}
		p.write(b, t)
	}
}
