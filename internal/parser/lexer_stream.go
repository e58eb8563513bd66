package parser

import (
	"bytes"
	"fmt"
)

// skipStreamEOL consumes the line ending required between the "stream"
// keyword and its content: CRLF, or LF alone (tolerated even though the
// spec prefers CRLF), or a lone CR.
func (l *Lexer) skipStreamEOL() error {
	ch, err := l.readByte()
	if err != nil {
		return fmt.Errorf("expected EOL after stream keyword: %w", err)
	}
	switch ch {
	case '\n':
		return nil
	case '\r':
		next, err := l.peek()
		if err == nil && next == '\n' {
			_, _ = l.readByte()
		}
		return nil
	default:
		return fmt.Errorf("expected EOL after stream keyword, got %q", ch)
	}
}

// readExactly reads exactly n bytes of raw stream content.
func (l *Lexer) readExactly(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative stream length %d", n)
	}
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		b, err := l.readByte()
		if err != nil {
			return nil, fmt.Errorf("unexpected EOF at byte %d of %d: %w", i, n, err)
		}
		buf[i] = b
	}
	return buf, nil
}

// expectEndstream consumes the optional EOL before "endstream" and the
// keyword itself.
func (l *Lexer) expectEndstream() error {
	l.skipWhitespace()
	tok, err := l.readKeywordOrBoolean(l.line, l.column)
	if err != nil {
		return fmt.Errorf("expected endstream keyword: %w", err)
	}
	if tok.Value != KeywordEndstream {
		return fmt.Errorf("expected 'endstream' keyword, got %q", tok.Value)
	}
	return nil
}

// readUntilEndstream scans raw bytes up to (but not including) the next
// "endstream" keyword, used when /Length cannot be resolved directly.
// Trailing EOL immediately before "endstream" is stripped per spec.
func (l *Lexer) readUntilEndstream() ([]byte, error) {
	const marker = "endstream"
	var buf bytes.Buffer

	for {
		b, err := l.readByte()
		if err != nil {
			return nil, fmt.Errorf("endstream not found: %w", err)
		}
		buf.WriteByte(b)

		if buf.Len() >= len(marker) {
			tail := buf.Bytes()[buf.Len()-len(marker):]
			if string(tail) == marker {
				content := buf.Bytes()[:buf.Len()-len(marker)]
				content = bytes.TrimSuffix(content, []byte("\r\n"))
				content = bytes.TrimSuffix(content, []byte("\n"))
				content = bytes.TrimSuffix(content, []byte("\r"))
				result := make([]byte, len(content))
				copy(result, content)
				return result, nil
			}
		}
	}
}
