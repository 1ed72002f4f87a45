package geom

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// AsWKT renders p as a WKT POLYGON literal, one ring per parenthesized
// group, in the order the rings appear in p.Rings. Coordinates are printed
// with strconv.FormatFloat's shortest round-tripping representation, the
// same formatting the teacher's writer relies on for its AsText() output.
func (p Polygon) AsWKT() string {
	var b strings.Builder
	b.WriteString("POLYGON(")
	for i, ring := range p.Rings {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('(')
		for j, v := range ring {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatFloat(v.X, 'g', -1, 64))
			b.WriteByte(' ')
			b.WriteString(strconv.FormatFloat(v.Y, 'g', -1, 64))
		}
		b.WriteByte(')')
	}
	b.WriteByte(')')
	return b.String()
}

// UnmarshalWKTPolygon parses a WKT POLYGON literal into a Polygon. It
// accepts only the POLYGON tag (not the full WKT grammar of geometry
// types); everything else — NaN/Inf rejection, signed-numeric-literal
// parsing, ring/point nesting — follows the lexer/parser split of the
// teacher's geom/wkt_parser.go.
func UnmarshalWKTPolygon(wkt string) (Polygon, error) {
	lex := newWKTLexer(strings.NewReader(wkt))
	p := &wktParser{lex: lex}

	tok, err := p.next()
	if err != nil {
		return Polygon{}, err
	}
	if strings.ToUpper(tok) != "POLYGON" {
		return Polygon{}, fmt.Errorf("%w: expected POLYGON tag, got %q", ErrInvalidInput, tok)
	}

	rings, err := p.nextRingList()
	if err != nil {
		return Polygon{}, err
	}
	if err := p.checkEOF(); err != nil {
		return Polygon{}, err
	}
	return Polygon{Rings: rings}, nil
}

type wktParser struct {
	lex     *wktLexer
	peeked  string
	hasPeek bool
}

func (p *wktParser) next() (string, error) {
	if p.hasPeek {
		p.hasPeek = false
		return p.peeked, nil
	}
	tok, err := p.lex.next()
	if err == io.EOF {
		return "", io.ErrUnexpectedEOF
	}
	return tok, err
}

func (p *wktParser) peek() (string, error) {
	if !p.hasPeek {
		tok, err := p.lex.next()
		if err == io.EOF {
			return "", io.ErrUnexpectedEOF
		}
		if err != nil {
			return "", err
		}
		p.peeked = tok
		p.hasPeek = true
	}
	return p.peeked, nil
}

func (p *wktParser) checkEOF() error {
	if p.hasPeek {
		return fmt.Errorf("%w: expected EOF but encountered %q", ErrInvalidInput, p.peeked)
	}
	tok, err := p.lex.next()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: expected EOF but encountered %q", ErrInvalidInput, tok)
}

func (p *wktParser) expect(want string) error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok != want {
		return fmt.Errorf("%w: expected %q but encountered %q", ErrInvalidInput, want, tok)
	}
	return nil
}

func (p *wktParser) nextRingList() ([]Ring, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	var rings []Ring
	for {
		ring, err := p.nextRing()
		if err != nil {
			return nil, err
		}
		rings = append(rings, ring)
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		if tok == ")" {
			return rings, nil
		}
		if tok != "," {
			return nil, fmt.Errorf("%w: expected ',' or ')' but encountered %q", ErrInvalidInput, tok)
		}
	}
}

func (p *wktParser) nextRing() (Ring, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	var ring Ring
	for {
		v, err := p.nextPoint()
		if err != nil {
			return nil, err
		}
		ring = append(ring, v)
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		if tok == ")" {
			return ring, nil
		}
		if tok != "," {
			return nil, fmt.Errorf("%w: expected ',' or ')' but encountered %q", ErrInvalidInput, tok)
		}
	}
}

func (p *wktParser) nextPoint() (XY, error) {
	x, err := p.nextSignedNumericLiteral()
	if err != nil {
		return XY{}, err
	}
	y, err := p.nextSignedNumericLiteral()
	if err != nil {
		return XY{}, err
	}
	return XY{X: x, Y: y}, nil
}

func (p *wktParser) nextSignedNumericLiteral() (float64, error) {
	tok, err := p.next()
	if err != nil {
		return 0, err
	}
	negative := false
	if tok == "-" {
		negative = true
		tok, err = p.next()
		if err != nil {
			return 0, err
		}
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid numeric literal %q", ErrInvalidInput, tok)
	}
	// NaNs and Infs are not allowed by the WKT grammar.
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: invalid signed numeric literal %q", ErrInvalidInput, tok)
	}
	if negative {
		f = -f
	}
	return f, nil
}

// wktLexer tokenizes WKT text into parens, commas, the '-' sign, and bare
// words (tags and numeric literals), skipping whitespace. This mirrors the
// token shape the teacher's parser consumes, trimmed to what a POLYGON-only
// grammar needs.
type wktLexer struct {
	r       io.RuneScanner
	scratch strings.Builder
}

func newWKTLexer(r io.Reader) *wktLexer {
	rs, ok := r.(io.RuneScanner)
	if !ok {
		rs = &runeScannerAdapter{r: r}
	}
	return &wktLexer{r: rs}
}

func (l *wktLexer) next() (string, error) {
	for {
		ch, _, err := l.r.ReadRune()
		if err != nil {
			return "", err
		}
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			continue
		case ch == '(' || ch == ')' || ch == ',' || ch == '-':
			return string(ch), nil
		default:
			l.scratch.Reset()
			l.scratch.WriteRune(ch)
			return l.readWord()
		}
	}
}

func (l *wktLexer) readWord() (string, error) {
	for {
		ch, _, err := l.r.ReadRune()
		if err == io.EOF {
			return l.scratch.String(), nil
		}
		if err != nil {
			return "", err
		}
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' ||
			ch == '(' || ch == ')' || ch == ',' {
			if err := l.r.UnreadRune(); err != nil {
				return "", err
			}
			return l.scratch.String(), nil
		}
		l.scratch.WriteRune(ch)
	}
}

// runeScannerAdapter wraps an io.Reader that doesn't already implement
// io.RuneScanner (strings.Reader and bufio.Reader both do, so this is only
// exercised by unusual callers).
type runeScannerAdapter struct {
	r    io.Reader
	last []byte
}

func (a *runeScannerAdapter) ReadRune() (rune, int, error) {
	buf := make([]byte, 1)
	_, err := a.r.Read(buf)
	if err != nil {
		return 0, 0, err
	}
	a.last = buf
	return rune(buf[0]), 1, nil
}

func (a *runeScannerAdapter) UnreadRune() error {
	return fmt.Errorf("unread not supported")
}
