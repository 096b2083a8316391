package valist

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sprintf renders a C printf format string against the values in args,
// consuming them from the cursor in order. Values left over after the last
// conversion are ignored, as vsnprintf ignores them.
func Sprintf(format string, args *Args) (string, error) {
	if err := args.live(); err != nil {
		return "", err
	}
	var b strings.Builder
	for i := 0; i < len(format); {
		j := strings.IndexByte(format[i:], '%')
		if j < 0 {
			b.WriteString(format[i:])
			break
		}
		b.WriteString(format[i : i+j])
		i += j

		sp, n, err := parseConversion(format[i:])
		if err != nil {
			return "", fmt.Errorf("%w: offset %d: %v", ErrBadFormat, i, err)
		}
		i += n
		if err := sp.render(&b, args); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// conversion is one parsed %[flags][width][.precision][length]conv.
type conversion struct {
	flags     string
	width     string
	precision string
	hasPrec   bool
	length    string
	verb      byte
}

func parseConversion(s string) (conversion, int, error) {
	var c conversion
	i := 1
	for i < len(s) && strings.IndexByte("-+ #0", s[i]) >= 0 {
		i++
	}
	c.flags = s[1:i]

	start := i
	if i < len(s) && s[i] == '*' {
		i++
	} else {
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	c.width = s[start:i]

	if i < len(s) && s[i] == '.' {
		c.hasPrec = true
		i++
		start = i
		if i < len(s) && s[i] == '*' {
			i++
		} else {
			for i < len(s) && isDigit(s[i]) {
				i++
			}
		}
		c.precision = s[start:i]
	}

	for _, l := range []string{"hh", "ll", "h", "l", "j", "z", "t", "L", "q"} {
		if strings.HasPrefix(s[i:], l) {
			c.length = l
			i += len(l)
			break
		}
	}

	if i >= len(s) {
		return c, i, fmt.Errorf("truncated conversion %q", s)
	}
	c.verb = s[i]
	return c, i + 1, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// directive is a conversion with star width and precision resolved.
type directive struct {
	flags string
	width int // -1 when absent
	prec  int // -1 when absent
}

func (d directive) has(flag byte) bool { return strings.IndexByte(d.flags, flag) >= 0 }

// resolve consumes the star width and precision arguments, which C reads
// before the converted value.
func (c conversion) resolve(args *Args) (directive, error) {
	d := directive{flags: c.flags, width: -1, prec: -1}
	switch c.width {
	case "":
	case "*":
		w, err := args.NextInt()
		if err != nil {
			return d, err
		}
		if w < 0 {
			d.flags += "-"
			w = -w
		}
		d.width = int(w)
	default:
		w, err := strconv.Atoi(c.width)
		if err != nil {
			return d, fmt.Errorf("%w: width %q", ErrBadFormat, c.width)
		}
		d.width = w
	}
	if c.hasPrec {
		switch c.precision {
		case "":
			d.prec = 0
		case "*":
			p, err := args.NextInt()
			if err != nil {
				return d, err
			}
			if p >= 0 {
				d.prec = int(p)
			}
		default:
			p, err := strconv.Atoi(c.precision)
			if err != nil {
				return d, fmt.Errorf("%w: precision %q", ErrBadFormat, c.precision)
			}
			d.prec = p
		}
	}
	return d, nil
}

// verb builds the fmt directive for d keeping only the flags in allowed.
func (d directive) verb(allowed string, verb byte) string {
	var sb strings.Builder
	sb.WriteByte('%')
	for i := 0; i < len(d.flags); i++ {
		if strings.IndexByte(allowed, d.flags[i]) >= 0 {
			sb.WriteByte(d.flags[i])
		}
	}
	if d.width >= 0 {
		sb.WriteString(strconv.Itoa(d.width))
	}
	if d.prec >= 0 {
		sb.WriteByte('.')
		sb.WriteString(strconv.Itoa(d.prec))
	}
	sb.WriteByte(verb)
	return sb.String()
}

// pad applies the field width in bytes, as C does for %s and %c.
func (d directive) pad(b *strings.Builder, s string) {
	fill := d.width - len(s)
	if fill <= 0 {
		b.WriteString(s)
		return
	}
	if d.has('-') {
		b.WriteString(s)
		b.WriteString(strings.Repeat(" ", fill))
		return
	}
	b.WriteString(strings.Repeat(" ", fill))
	b.WriteString(s)
}

func (c conversion) render(b *strings.Builder, args *Args) error {
	if c.verb == '%' {
		b.WriteByte('%')
		return nil
	}
	if strings.IndexByte("diuoxXeEfFgGsc", c.verb) < 0 {
		return fmt.Errorf("%w: unsupported conversion %%%c", ErrBadFormat, c.verb)
	}
	d, err := c.resolve(args)
	if err != nil {
		return err
	}

	switch c.verb {
	case 'd', 'i':
		n, err := args.NextInt()
		if err != nil {
			return err
		}
		fmt.Fprintf(b, d.verb("-+ 0", 'd'), c.signed(n))
	case 'u', 'o', 'x', 'X':
		n, err := args.NextInt()
		if err != nil {
			return err
		}
		u := c.unsigned(n)
		allowed := "-0#"
		if c.verb == 'u' || u == 0 {
			allowed = "-0"
		}
		verb := c.verb
		if verb == 'u' {
			verb = 'd'
		}
		fmt.Fprintf(b, d.verb(allowed, verb), u)
	case 'e', 'E', 'f', 'F', 'g', 'G':
		f, err := args.NextFloat()
		if err != nil {
			return err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			d.pad(b, c.nonFinite(d, f))
			return nil
		}
		if d.prec < 0 {
			d.prec = 6
		}
		fmt.Fprintf(b, d.verb("-+ 0#", c.verb), f)
	case 's':
		s, err := args.NextText()
		if err != nil {
			return err
		}
		if d.prec >= 0 && d.prec < len(s) {
			s = s[:d.prec]
		}
		d.pad(b, s)
	case 'c':
		n, err := args.NextInt()
		if err != nil {
			return err
		}
		d.pad(b, string([]byte{byte(n)}))
	}
	return nil
}

// nonFinite spells infinities and NaN the way glibc does.
func (c conversion) nonFinite(d directive, f float64) string {
	var s string
	switch {
	case math.IsNaN(f):
		s = "nan"
	case f < 0:
		s = "-inf"
	default:
		s = "inf"
	}
	if s[0] != '-' {
		if d.has('+') {
			s = "+" + s
		} else if d.has(' ') {
			s = " " + s
		}
	}
	if c.verb == 'E' || c.verb == 'F' || c.verb == 'G' {
		s = strings.ToUpper(s)
	}
	return s
}

// signed truncates n to the width implied by the length modifier.
func (c conversion) signed(n int64) int64 {
	switch c.length {
	case "hh":
		return int64(int8(n))
	case "h":
		return int64(int16(n))
	case "l", "ll", "j", "z", "t", "q":
		return n
	default:
		return int64(int32(n))
	}
}

// unsigned truncates n to the width implied by the length modifier.
func (c conversion) unsigned(n int64) uint64 {
	switch c.length {
	case "hh":
		return uint64(uint8(n))
	case "h":
		return uint64(uint16(n))
	case "l", "ll", "j", "z", "t", "q":
		return uint64(n)
	default:
		return uint64(uint32(n))
	}
}
