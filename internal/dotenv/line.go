package dotenv

import (
	"strings"
)

// Kind classifies a line.
type Kind int

const (
	KindBlank Kind = iota
	KindComment
	KindAssignment
	// KindInvalid lines could not be parsed as KEY=VALUE. They render
	// verbatim and carry a Warning.
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindComment:
		return "comment"
	case KindAssignment:
		return "assignment"
	case KindInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Quote is the quoting style around an assignment's value.
type Quote byte

const (
	QuoteNone   Quote = 0
	QuoteSingle Quote = '\''
	QuoteDouble Quote = '"'
)

func (q Quote) mark() string {
	if q == QuoteNone {
		return ""
	}
	return string(rune(q))
}

// Line is one parsed physical line. Lines are values; WithValue returns a
// modified copy.
type Line struct {
	// Raw is the original text, without the trailing newline.
	Raw  string
	Kind Kind

	Indent string
	Export bool
	Key    string
	Value  string
	Quote  Quote
	// Suffix is everything after the value: trailing whitespace and an
	// optional inline comment.
	Suffix string
	// EOL is "\r" when the line came from a CRLF file.
	EOL string

	Warning string

	// head is the raw text from the start of the line through the spacing
	// after '='.
	head    string
	changed bool
}

// ParseLine classifies raw, which must not contain '\n'.
func ParseLine(raw string) Line {
	line := Line{Raw: raw}

	body := raw
	if strings.HasSuffix(body, "\r") {
		body = body[:len(body)-1]
		line.EOL = "\r"
	}

	trimmed := strings.TrimLeft(body, " \t")
	line.Indent = body[:len(body)-len(trimmed)]

	switch {
	case strings.TrimSpace(trimmed) == "":
		line.Kind = KindBlank
		return line
	case trimmed[0] == '#':
		line.Kind = KindComment
		return line
	}

	eq := indexUnquoted(trimmed, '=')
	if eq < 0 {
		return invalid(line, "no '=' found")
	}

	keyText := trimmed[:eq]
	if rest, ok := cutExport(keyText); ok {
		line.Export = true
		keyText = rest
	}
	line.Key = strings.TrimSpace(keyText)
	if line.Key == "" {
		return invalid(line, "empty key")
	}
	if strings.ContainsAny(line.Key, " \t") {
		return invalid(line, "key contains whitespace")
	}

	rest := trimmed[eq+1:]
	afterEq := strings.TrimLeft(rest, " \t")
	spacing := rest[:len(rest)-len(afterEq)]
	line.head = body[:len(body)-len(afterEq)]

	if q := Quote(firstByte(afterEq)); q == QuoteSingle || q == QuoteDouble {
		end := closingQuote(afterEq, q)
		if end < 0 {
			return invalid(line, "unterminated quoted value")
		}
		suffix := afterEq[end+1:]
		if isSuffix(suffix) {
			line.Kind = KindAssignment
			line.Quote = q
			line.Value = afterEq[1:end]
			line.Suffix = suffix
			return line
		}
		// Text after the closing quote: the quotes are part of the value.
	}

	line.Kind = KindAssignment
	line.Value, line.Suffix = splitUnquoted(afterEq, spacing != "")
	if line.Value == "" && spacing != "" && strings.HasPrefix(line.Suffix, "#") {
		// An empty value before a comment: the spacing belongs to the
		// comment, or a value written later would run into the '#'.
		line.head = line.head[:len(line.head)-len(spacing)]
		line.Suffix = spacing + line.Suffix
	}
	return line
}

// Render returns the line's text. An unmodified line renders as Raw.
func (l Line) Render() string {
	if !l.changed {
		return l.Raw
	}
	mark := l.Quote.mark()
	return l.head + mark + l.Value + mark + l.Suffix + l.EOL
}

// WithValue returns a copy of an assignment with its semantic value
// replaced. Indentation, quoting and the trailing comment are kept.
// Lines of any other kind are returned unchanged.
func (l Line) WithValue(value string) Line {
	if l.Kind != KindAssignment {
		return l
	}
	l.Value = value
	l.changed = true
	return l
}

// Place returns a copy of an assignment holding value, like WithValue, but
// only if a fresh parse of the rendered line reads back the same value and
// comment. The line's own quote style is tried first, then single and double
// quotes. It reports false when no style can hold value, for example when
// value contains a newline.
func (l Line) Place(value string) (Line, bool) {
	if l.Kind != KindAssignment || strings.Contains(value, "\n") {
		return l, false
	}
	for _, q := range []Quote{l.Quote, QuoteSingle, QuoteDouble} {
		candidate := l
		candidate.Quote = q
		candidate = candidate.WithValue(value)
		if candidate.readsBack() {
			return candidate, true
		}
	}
	return l, false
}

func (l Line) readsBack() bool {
	again := ParseLine(l.Render())
	return again.Kind == KindAssignment &&
		again.Key == l.Key &&
		again.Value == l.Value &&
		again.Quote == l.Quote &&
		again.Comment() == l.Comment()
}

// Changed reports whether the line was produced by WithValue.
func (l Line) Changed() bool {
	return l.changed
}

// Interpreted returns the value the way a shell reads it. Inside double
// quotes the escapes \n, \r, \t, \" and \\ become the characters they
// name and any other backslash is kept. Other values are returned as is.
func (l Line) Interpreted() string {
	if l.Quote != QuoteDouble || !strings.Contains(l.Value, `\`) {
		return l.Value
	}
	var b strings.Builder
	for i := 0; i < len(l.Value); i++ {
		c := l.Value[i]
		if c != '\\' || i+1 == len(l.Value) {
			b.WriteByte(c)
			continue
		}
		i++
		switch next := l.Value[i]; next {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '"', '\\':
			b.WriteByte(next)
		default:
			b.WriteByte(c)
			b.WriteByte(next)
		}
	}
	return b.String()
}

// Comment returns the inline comment of an assignment, without the
// leading '#', or the text of a comment line.
func (l Line) Comment() string {
	switch l.Kind {
	case KindComment:
		return strings.TrimPrefix(strings.TrimLeft(strings.TrimSuffix(l.Raw, "\r"), " \t"), "#")
	case KindAssignment:
		c := strings.TrimLeft(l.Suffix, " \t")
		return strings.TrimPrefix(c, "#")
	default:
		return ""
	}
}

func invalid(line Line, reason string) Line {
	line.Kind = KindInvalid
	line.Warning = reason
	line.Key = ""
	line.Export = false
	return line
}

func cutExport(keyText string) (string, bool) {
	for _, sep := range []string{"export ", "export\t"} {
		if rest, ok := strings.CutPrefix(keyText, sep); ok {
			return rest, true
		}
	}
	return keyText, false
}

// indexUnquoted returns the index of the first c outside single or double
// quotes, or -1.
func indexUnquoted(s string, c byte) int {
	var quote byte
	for i := 0; i < len(s); i++ {
		switch {
		case quote != 0:
			if s[i] == '\\' && quote == '"' {
				i++
			} else if s[i] == quote {
				quote = 0
			}
		case s[i] == '\'' || s[i] == '"':
			quote = s[i]
		case s[i] == c:
			return i
		}
	}
	return -1
}

// closingQuote returns the index of the quote closing s[0], or -1.
// Backslash escapes are honoured inside double quotes only.
func closingQuote(s string, q Quote) int {
	for i := 1; i < len(s); i++ {
		if s[i] == '\\' && q == QuoteDouble {
			i++
			continue
		}
		if s[i] == byte(q) {
			return i
		}
	}
	return -1
}

// isSuffix reports whether s may follow a closing quote: only whitespace
// and an optional comment.
func isSuffix(s string) bool {
	t := strings.TrimLeft(s, " \t")
	return t == "" || t[0] == '#'
}

// splitUnquoted splits an unquoted value from trailing whitespace and an
// inline comment. A '#' starts a comment when preceded by whitespace, or
// when it is the first character and '=' was followed by whitespace.
func splitUnquoted(s string, spaced bool) (value, suffix string) {
	end := len(s)
	for i := 0; i < len(s); i++ {
		if s[i] != '#' {
			continue
		}
		if (i == 0 && spaced) || (i > 0 && (s[i-1] == ' ' || s[i-1] == '\t')) {
			end = i
			break
		}
	}
	value = strings.TrimRight(s[:end], " \t")
	return value, s[len(value):]
}

func firstByte(s string) byte {
	if s == "" {
		return 0
	}
	return s[0]
}
