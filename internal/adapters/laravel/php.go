package laravel

import (
	"fmt"
	"regexp"
	"strings"
)

// phpValue is a scalar or an array literal read from PHP source.
// Scalars keep their source spelling with quotes removed.
type phpValue struct {
	str     string
	isArray bool
	items   []phpItem
}

type phpItem struct {
	key    string
	hasKey bool
	value  phpValue
}

// scalars returns the scalar values of a list-style array.
func (v phpValue) scalars() []string {
	var out []string
	for _, item := range v.items {
		if !item.value.isArray {
			out = append(out, item.value.str)
		}
	}
	return out
}

// lookup returns the value stored under key.
func (v phpValue) lookup(key string) (phpValue, bool) {
	for _, item := range v.items {
		if item.hasKey && item.key == key {
			return item.value, true
		}
	}
	return phpValue{}, false
}

// isNull reports whether the value is the PHP null literal.
func (v phpValue) isNull() bool {
	return !v.isArray && strings.EqualFold(v.str, "null")
}

// findProperty locates a class property assignment such as
// `protected $fillable = [...]` and parses its value.
func findProperty(src, name string) (phpValue, bool, error) {
	re := regexp.MustCompile(`\$` + regexp.QuoteMeta(name) + `\s*=`)
	loc := re.FindStringIndex(src)
	if loc == nil {
		return phpValue{}, false, nil
	}
	p := &phpParser{src: src, pos: loc[1]}
	v, err := p.value()
	if err != nil {
		return phpValue{}, false, fmt.Errorf("failed to parse $%s: %w", name, err)
	}
	return v, true, nil
}

// phpParser reads the subset of PHP literal syntax used in model properties:
// short and long array syntax, quoted strings, and bare tokens.
type phpParser struct {
	src string
	pos int
}

func (p *phpParser) value() (phpValue, error) {
	p.skipSpace()
	if p.eof() {
		return phpValue{}, fmt.Errorf("unexpected end of input")
	}

	switch c := p.src[p.pos]; {
	case c == '[':
		p.pos++
		return p.array(']')
	case c == '\'' || c == '"':
		s, err := p.quoted()
		return phpValue{str: s}, err
	case hasPrefixFold(p.src[p.pos:], "array"):
		p.pos += len("array")
		p.skipSpace()
		if p.eof() || p.src[p.pos] != '(' {
			return phpValue{}, fmt.Errorf("expected ( after array at offset %d", p.pos)
		}
		p.pos++
		return p.array(')')
	}

	start := p.pos
	for !p.eof() && !strings.ContainsRune(",])=; \t\r\n", rune(p.src[p.pos])) {
		p.pos++
	}
	if start == p.pos {
		return phpValue{}, fmt.Errorf("unexpected %q at offset %d", p.src[p.pos], p.pos)
	}
	return phpValue{str: p.src[start:p.pos]}, nil
}

func (p *phpParser) array(closer byte) (phpValue, error) {
	v := phpValue{isArray: true}
	for {
		p.skipSpace()
		if p.eof() {
			return phpValue{}, fmt.Errorf("unterminated array")
		}
		if p.src[p.pos] == closer {
			p.pos++
			return v, nil
		}

		first, err := p.value()
		if err != nil {
			return phpValue{}, err
		}
		item := phpItem{value: first}

		p.skipSpace()
		if strings.HasPrefix(p.src[p.pos:], "=>") {
			p.pos += 2
			second, err := p.value()
			if err != nil {
				return phpValue{}, err
			}
			item = phpItem{key: first.str, hasKey: true, value: second}
		}
		v.items = append(v.items, item)

		p.skipSpace()
		if p.eof() {
			return phpValue{}, fmt.Errorf("unterminated array")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case closer:
			p.pos++
			return v, nil
		default:
			return phpValue{}, fmt.Errorf("unexpected %q at offset %d", p.src[p.pos], p.pos)
		}
	}
}

func (p *phpParser) quoted() (string, error) {
	quote := p.src[p.pos]
	p.pos++

	var b strings.Builder
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return b.String(), nil
		case c == '\\' && p.pos+1 < len(p.src):
			next := p.src[p.pos+1]
			switch {
			case next == quote || next == '\\':
				b.WriteByte(next)
			case quote == '"' && next == 'n':
				b.WriteByte('\n')
			case quote == '"' && next == 't':
				b.WriteByte('\t')
			case quote == '"' && next == '$':
				b.WriteByte('$')
			default:
				b.WriteByte(c)
				b.WriteByte(next)
			}
			p.pos += 2
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", fmt.Errorf("unterminated string")
}

// skipSpace skips whitespace and comments.
func (p *phpParser) skipSpace() {
	for !p.eof() {
		rest := p.src[p.pos:]
		switch {
		case rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\r' || rest[0] == '\n':
			p.pos++
		case strings.HasPrefix(rest, "//") || rest[0] == '#':
			if i := strings.IndexByte(rest, '\n'); i >= 0 {
				p.pos += i + 1
			} else {
				p.pos = len(p.src)
			}
		case strings.HasPrefix(rest, "/*"):
			if i := strings.Index(rest, "*/"); i >= 0 {
				p.pos += i + 2
			} else {
				p.pos = len(p.src)
			}
		default:
			return
		}
	}
}

func (p *phpParser) eof() bool {
	return p.pos >= len(p.src)
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
