package parser

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// Parser builds PdfObject values from a token stream produced by a Lexer.
//
// The underlying Lexer cannot reliably un-read bytes once consumed (see its
// Peek doc comment), so Parser keeps its own small FIFO of look-ahead tokens
// for the "N G R" vs "N G obj" disambiguation and for stream /Length lookup.
type Parser struct {
	lexer   *Lexer
	pending []Token
}

// NewParser creates a Parser reading from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{lexer: NewLexer(r)}
}

func (p *Parser) nextToken() (Token, error) {
	if len(p.pending) > 0 {
		tok := p.pending[0]
		p.pending = p.pending[1:]
		return tok, nil
	}
	return p.lexer.NextToken()
}

func (p *Parser) pushBack(tok Token) {
	p.pending = append([]Token{tok}, p.pending...)
}

// ParseObject parses a single PDF object (including arrays, dictionaries,
// streams, and indirect references) from the current position.
func (p *Parser) ParseObject() (PdfObject, error) {
	tok, err := p.nextToken()
	if err != nil {
		return nil, fmt.Errorf("parse object: %w", err)
	}
	return p.parseFromToken(tok)
}

//nolint:cyclop // dispatch over every PDF object kind
func (p *Parser) parseFromToken(tok Token) (PdfObject, error) {
	switch tok.Type {
	case TokenInteger:
		return p.parseIntegerOrReference(tok)
	case TokenReal:
		v, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid real %q: %w", tok.Value, err)
		}
		return NewReal(v), nil
	case TokenString:
		return NewStringBytes([]byte(tok.Value)), nil
	case TokenHexString:
		return NewHexString(tok.Value), nil
	case TokenName:
		return NewName(tok.Value), nil
	case TokenBoolean:
		return NewBoolean(tok.Value == "true"), nil
	case TokenNull:
		return NewNull(), nil
	case TokenArrayStart:
		return p.parseArray()
	case TokenDictStart:
		return p.parseDictionaryOrStream()
	case TokenEOF:
		return nil, fmt.Errorf("unexpected end of input")
	case TokenError:
		return nil, fmt.Errorf("lexer error: %s", tok.Value)
	default:
		return nil, fmt.Errorf("unexpected token %s", tok)
	}
}

// parseIntegerOrReference disambiguates a bare Integer from the start of an
// "N G R" indirect reference via two tokens of look-ahead.
func (p *Parser) parseIntegerOrReference(tok Token) (PdfObject, error) {
	n, err := strconv.ParseInt(tok.Value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid integer %q: %w", tok.Value, err)
	}

	tok2, err := p.nextToken()
	if err != nil {
		return NewInteger(n), nil //nolint:nilerr // EOF just ends the bare integer
	}
	if tok2.Type != TokenInteger {
		p.pushBack(tok2)
		return NewInteger(n), nil
	}

	gen, err := strconv.ParseInt(tok2.Value, 10, 64)
	if err != nil {
		p.pushBack(tok2)
		return NewInteger(n), nil //nolint:nilerr // fall back to a bare integer
	}

	tok3, err := p.nextToken()
	if err != nil || tok3.Type != TokenKeyword || tok3.Value != "R" {
		if err == nil {
			p.pushBack(tok3)
		}
		p.pushBack(tok2)
		return NewInteger(n), nil
	}

	return NewIndirectReference(int(n), int(gen)), nil
}

func (p *Parser) parseArray() (*Array, error) {
	arr := NewArray()
	for {
		tok, err := p.nextToken()
		if err != nil {
			return nil, fmt.Errorf("unterminated array: %w", err)
		}
		if tok.Type == TokenArrayEnd {
			return arr, nil
		}
		if tok.Type == TokenEOF {
			return nil, fmt.Errorf("unterminated array")
		}
		obj, err := p.parseFromToken(tok)
		if err != nil {
			return nil, err
		}
		arr.Append(obj)
	}
}

func (p *Parser) parseDictionaryOrStream() (PdfObject, error) {
	dict, err := p.parseDictionary()
	if err != nil {
		return nil, err
	}

	tok, err := p.nextToken()
	if err != nil {
		// No more input: this was a bare dictionary.
		return dict, nil //nolint:nilerr
	}
	if tok.Type != TokenKeyword || tok.Value != KeywordStream {
		p.pushBack(tok)
		return dict, nil
	}

	return p.parseStreamBody(dict)
}

func (p *Parser) parseDictionary() (*Dictionary, error) {
	dict := NewDictionary()
	for {
		tok, err := p.nextToken()
		if err != nil {
			return nil, fmt.Errorf("unterminated dictionary: %w", err)
		}
		if tok.Type == TokenDictEnd {
			return dict, nil
		}
		if tok.Type != TokenName {
			return nil, fmt.Errorf("expected dictionary key, got %s", tok)
		}
		key := tok.Value

		valTok, err := p.nextToken()
		if err != nil {
			return nil, fmt.Errorf("unterminated dictionary: %w", err)
		}
		val, err := p.parseFromToken(valTok)
		if err != nil {
			return nil, fmt.Errorf("dictionary value for /%s: %w", key, err)
		}
		dict.Set(key, val)
	}
}

// parseStreamBody reads the raw bytes between "stream" and "endstream" once
// the lexer has already consumed the stream keyword. The PDF spec requires
// the keyword be followed by CRLF or LF (not CR alone); a single trailing
// CR is tolerated.
func (p *Parser) parseStreamBody(dict *Dictionary) (*Stream, error) {
	if err := p.lexer.skipStreamEOL(); err != nil {
		return nil, fmt.Errorf("stream keyword: %w", err)
	}

	lengthObj := dict.Get("Length")
	length, ok := lengthObj.(*Integer)
	if !ok {
		// /Length may be an indirect reference we cannot resolve here (no
		// xref access at this layer), or missing entirely: fall back to
		// scanning for the literal "endstream" keyword.
		content, err := p.lexer.readUntilEndstream()
		if err != nil {
			return nil, fmt.Errorf("stream without resolvable /Length: %w", err)
		}
		return p.finishStream(dict, content)
	}

	content, err := p.lexer.readExactly(int(length.Value()))
	if err != nil {
		return nil, fmt.Errorf("read stream content: %w", err)
	}

	if err := p.lexer.expectEndstream(); err != nil {
		return nil, err
	}

	return p.finishStream(dict, content)
}

func (p *Parser) finishStream(dict *Dictionary, content []byte) (*Stream, error) {
	stream := NewStream(dict, content)

	tok, err := p.nextToken()
	if err == nil {
		// Streams nested inside object streams have no endobj; only the
		// top-level ParseIndirectObject caller enforces endobj, so push
		// back whatever we read and let it decide.
		p.pushBack(tok)
	}
	return stream, nil
}

// ParseIndirectObject parses a top-level "N G obj ... endobj" construct.
func (p *Parser) ParseIndirectObject() (*IndirectObject, error) {
	numTok, err := p.nextToken()
	if err != nil {
		return nil, fmt.Errorf("read object number: %w", err)
	}
	if numTok.Type != TokenInteger {
		return nil, fmt.Errorf("expected object number, got %s", numTok)
	}
	num, err := strconv.Atoi(numTok.Value)
	if err != nil {
		return nil, fmt.Errorf("invalid object number %q: %w", numTok.Value, err)
	}

	genTok, err := p.nextToken()
	if err != nil {
		return nil, fmt.Errorf("read generation number: %w", err)
	}
	if genTok.Type != TokenInteger {
		return nil, fmt.Errorf("expected generation number, got %s", genTok)
	}
	gen, err := strconv.Atoi(genTok.Value)
	if err != nil {
		return nil, fmt.Errorf("invalid generation number %q: %w", genTok.Value, err)
	}

	objTok, err := p.nextToken()
	if err != nil {
		return nil, fmt.Errorf("read obj keyword: %w", err)
	}
	if objTok.Type != TokenKeyword || objTok.Value != KeywordObj {
		return nil, fmt.Errorf("expected 'obj' keyword, got %s", objTok)
	}

	valTok, err := p.nextToken()
	if err != nil {
		return nil, fmt.Errorf("read object value: %w", err)
	}

	var value PdfObject
	if valTok.Type == TokenDictStart {
		value, err = p.parseDictionaryOrStream()
	} else {
		value, err = p.parseFromToken(valTok)
	}
	if err != nil {
		return nil, err
	}

	if _, isStream := value.(*Stream); !isStream {
		endTok, err := p.nextToken()
		if err != nil {
			return nil, fmt.Errorf("read endobj keyword: %w", err)
		}
		if endTok.Type != TokenKeyword || endTok.Value != KeywordEndobj {
			return nil, fmt.Errorf("expected 'endobj' keyword, got %s", endTok)
		}
	} else {
		// finishStream pushed back the token after endstream; it must be endobj.
		endTok, err := p.nextToken()
		if err != nil {
			return nil, fmt.Errorf("read endobj keyword: %w", err)
		}
		if endTok.Type != TokenKeyword || endTok.Value != KeywordEndobj {
			return nil, fmt.Errorf("expected 'endobj' keyword, got %s", endTok)
		}
	}

	return NewIndirectObject(num, gen, value), nil
}

// ParseObjectStream decodes the body of a decompressed /Type /ObjStm
// stream: numObjects header pairs of "objNum offset" followed by the
// concatenated object values starting at firstOffset. p itself is not
// used for positioned reads; it only provides a consistent receiver for
// the sibling object-parsing helpers.
func (p *Parser) ParseObjectStream(data []byte, numObjects, firstOffset int) (map[int]PdfObject, error) {
	if numObjects <= 0 {
		return nil, fmt.Errorf("invalid number of objects: %d", numObjects)
	}
	if firstOffset < 0 || firstOffset > len(data) {
		return nil, fmt.Errorf("invalid first offset: %d", firstOffset)
	}

	header := data[:firstOffset]
	fields := bytes.Fields(header)
	if len(fields) < numObjects*2 {
		return nil, fmt.Errorf("object stream header too short: got %d fields, want %d", len(fields), numObjects*2)
	}

	type entry struct {
		num    int
		offset int
	}
	entries := make([]entry, numObjects)
	for i := 0; i < numObjects; i++ {
		num, err := strconv.Atoi(string(fields[i*2]))
		if err != nil {
			return nil, fmt.Errorf("invalid object number in header: %w", err)
		}
		off, err := strconv.Atoi(string(fields[i*2+1]))
		if err != nil {
			return nil, fmt.Errorf("invalid offset in header: %w", err)
		}
		entries[i] = entry{num: num, offset: off}
	}

	objects := make(map[int]PdfObject, numObjects)
	for i, e := range entries {
		start := firstOffset + e.offset
		var end int
		if i+1 < len(entries) {
			end = firstOffset + entries[i+1].offset
		} else {
			end = len(data)
		}
		if start < 0 || start > len(data) || end < start || end > len(data) {
			return nil, fmt.Errorf("object %d: offset range out of bounds", e.num)
		}

		sp := NewParser(bytes.NewReader(data[start:end]))
		obj, err := sp.ParseObject()
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", e.num, err)
		}
		objects[e.num] = obj
	}

	return objects, nil
}
