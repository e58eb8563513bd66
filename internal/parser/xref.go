package parser

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// XRefEntryType identifies the kind of a cross-reference table entry.
type XRefEntryType int

// Cross-reference entry types per PDF 1.7 §7.5.8.2 (the three /W field-0
// values of a cross-reference stream; classical xref tables only ever
// produce Free/InUse).
const (
	XRefEntryFree XRefEntryType = iota
	XRefEntryInUse
	XRefEntryCompressed
)

// XRefEntry is one row of the cross-reference table.
//
// For XRefEntryInUse, Offset is the byte offset of the object in the file
// and Generation is its generation number. For XRefEntryCompressed, Offset
// holds the object number of the containing object stream and Generation
// holds the index of this object within that stream.
type XRefEntry struct {
	Type       XRefEntryType
	Offset     int64
	Generation int
}

// XRefTable is the merged cross-reference table for a document: the
// newest (numerically highest /Prev-chain priority) entry for each object
// number wins, matching PDF incremental-update semantics.
type XRefTable struct {
	mu      sync.RWMutex
	entries map[int]*XRefEntry
	size    int
}

// NewXRefTable creates an empty XRefTable.
func NewXRefTable() *XRefTable {
	return &XRefTable{entries: make(map[int]*XRefEntry)}
}

// GetEntry returns the entry for objNum, if any.
func (t *XRefTable) GetEntry(objNum int) (*XRefEntry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.entries[objNum]
	return e, ok
}

// Set records or overwrites the entry for objNum. Earlier (older, "Prev")
// updates must call Set before newer ones so that the last writer for a
// given object number reflects the most recent revision.
func (t *XRefTable) Set(objNum int, entry *XRefEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[objNum] = entry
}

// SetIfAbsent records entry only if objNum has no entry yet. Used while
// walking a /Prev chain newest-to-oldest: once the newest table has set an
// object, older revisions of that same object must not override it.
func (t *XRefTable) SetIfAbsent(objNum int, entry *XRefEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.entries[objNum]; !exists {
		t.entries[objNum] = entry
	}
}

// Size returns the highest object number this table was declared to cover
// (the trailer's /Size), not merely the count of entries actually present.
func (t *XRefTable) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

// SetSize records the trailer's /Size value.
func (t *XRefTable) SetSize(size int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if size > t.size {
		t.size = size
	}
}

// Len returns the number of entries currently present.
func (t *XRefTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Merge copies every entry from older into t that t does not already have,
// implementing /Prev chain semantics: t is assumed to be the newer table,
// so its own entries always win.
func (t *XRefTable) Merge(older *XRefTable) {
	older.mu.RLock()
	snapshot := make(map[int]*XRefEntry, len(older.entries))
	for num, entry := range older.entries {
		snapshot[num] = entry
	}
	olderSize := older.size
	older.mu.RUnlock()

	for num, entry := range snapshot {
		t.SetIfAbsent(num, entry)
	}
	t.SetSize(olderSize)
}

// readBigEndianInt decodes data as an unsigned big-endian integer of
// whatever length data happens to be (the /W field widths in a
// cross-reference stream are not fixed at 1/2/4/8).
func readBigEndianInt(data []byte) int64 {
	var v int64
	for _, b := range data {
		v = (v << 8) | int64(b)
	}
	return v
}

// parseXRefStreamEntries decodes the body of a cross-reference stream
// (PDF 1.7 §7.5.8) according to its /W (field widths) and /Index
// (object-number ranges) entries. /Index defaults to [0 Size] when absent.
func (p *Parser) parseXRefStreamEntries(dict *Dictionary, data []byte) (*XRefTable, error) {
	wArr := dict.GetArray("W")
	if wArr == nil || wArr.Len() != 3 {
		return nil, fmt.Errorf("xref stream missing valid /W array")
	}
	widths := make([]int, 3)
	for i := 0; i < 3; i++ {
		intObj, ok := wArr.Get(i).(*Integer)
		if !ok {
			return nil, fmt.Errorf("/W[%d] is not an integer", i)
		}
		widths[i] = int(intObj.Value())
	}
	entryWidth := widths[0] + widths[1] + widths[2]
	if entryWidth <= 0 {
		return nil, fmt.Errorf("invalid /W widths: %v", widths)
	}

	var ranges [][2]int
	if idxArr := dict.GetArray("Index"); idxArr != nil {
		if idxArr.Len()%2 != 0 {
			return nil, fmt.Errorf("/Index array must have an even number of entries")
		}
		for i := 0; i < idxArr.Len(); i += 2 {
			start, ok1 := idxArr.Get(i).(*Integer)
			count, ok2 := idxArr.Get(i + 1).(*Integer)
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("/Index entries must be integers")
			}
			ranges = append(ranges, [2]int{int(start.Value()), int(count.Value())})
		}
	} else {
		size := int(dict.GetInteger("Size"))
		ranges = [][2]int{{0, size}}
	}

	table := NewXRefTable()
	table.SetSize(int(dict.GetInteger("Size")))

	pos := 0
	for _, rg := range ranges {
		start, count := rg[0], rg[1]
		for i := 0; i < count; i++ {
			if pos+entryWidth > len(data) {
				return nil, fmt.Errorf("xref stream data truncated at object %d", start+i)
			}
			row := data[pos : pos+entryWidth]
			pos += entryWidth

			field0 := widths[0]
			field1 := widths[1]
			field2 := widths[2]

			var typ int64 = 1 // default type is 1 (in-use) when /W[0] is 0
			if field0 > 0 {
				typ = readBigEndianInt(row[:field0])
			}
			f2 := readBigEndianInt(row[field0 : field0+field1])
			f3 := readBigEndianInt(row[field0+field1 : field0+field1+field2])

			entry := &XRefEntry{
				Type:       XRefEntryType(typ),
				Offset:     f2,
				Generation: int(f3),
			}
			table.Set(start+i, entry)
		}
	}

	return table, nil
}

// flateDecoder is a minimal zlib-backed decompressor used by the xref/
// object-stream loader, which only ever needs plain Flate decoding.
type flateDecoder struct{}

// Decode decompresses zlib/Flate-compressed data.
func (flateDecoder) Decode(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}
	defer func() { _ = r.Close() }()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}
	return out, nil
}

// parseClassicXRefSection parses one "xref" section of a classical
// (text-based) cross-reference table, stopping before the "trailer"
// keyword. br is positioned just after the "xref" keyword's line.
func parseClassicXRefSection(br *bufio.Reader) (*XRefTable, error) {
	table := NewXRefTable()

	for {
		line, err := readTrimmedLine(br)
		if err != nil {
			return nil, fmt.Errorf("read xref subsection header: %w", err)
		}
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, KeywordTrailer) {
			return table, nil
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed xref subsection header %q", line)
		}
		start, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("invalid subsection start %q: %w", fields[0], err)
		}
		count, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("invalid subsection count %q: %w", fields[1], err)
		}

		for i := 0; i < count; i++ {
			entryLine, err := readFixedXRefLine(br)
			if err != nil {
				return nil, fmt.Errorf("read xref entry %d: %w", start+i, err)
			}
			entry, err := parseClassicXRefLine(entryLine)
			if err != nil {
				return nil, fmt.Errorf("object %d: %w", start+i, err)
			}
			table.Set(start+i, entry)
		}
	}
}

// readFixedXRefLine reads a classical xref entry: the 18-byte
// "nnnnnnnnnn ggggg n" body, then its line ending, which is normally
// two bytes ("\r\n", " \n" or " \r") but is also accepted as a single
// LF or CR, as found in the wild.
func readFixedXRefLine(br *bufio.Reader) (string, error) {
	buf := make([]byte, 18)
	n, err := io.ReadFull(br, buf)
	if err != nil && n == 0 {
		return "", err
	}
	for {
		b, err := br.Peek(1)
		if err != nil {
			break
		}
		if b[0] == ' ' || b[0] == '\r' {
			_, _ = br.ReadByte()
			continue
		}
		if b[0] == '\n' {
			_, _ = br.ReadByte()
		}
		break
	}
	return strings.TrimSpace(string(buf[:n])), nil
}

func parseClassicXRefLine(line string) (*XRefEntry, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return nil, fmt.Errorf("malformed xref entry %q", line)
	}
	offset, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid offset %q: %w", fields[0], err)
	}
	gen, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("invalid generation %q: %w", fields[1], err)
	}

	switch fields[2] {
	case "n":
		return &XRefEntry{Type: XRefEntryInUse, Offset: offset, Generation: gen}, nil
	case "f":
		return &XRefEntry{Type: XRefEntryFree, Offset: offset, Generation: gen}, nil
	default:
		return nil, fmt.Errorf("unknown xref entry flag %q", fields[2])
	}
}

func readTrimmedLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
