package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
)

// objHeaderPattern matches a "N G obj" indirect object header at the start
// of a line, the same shape recoverObjects scans the whole file for.
var objHeaderPattern = regexp.MustCompile(`(?m)^[ \t]*(\d+)[ \t]+(\d+)[ \t]+obj\b`)

// recoverXRefByScanning rebuilds an XRefTable by linearly scanning the
// whole file body for "N G obj" headers, used when /Prev chain resolution
// or startxref fails outright. This never recovers compressed
// (ObjStm-housed) objects, matching what a byte-level scan can see.
func recoverXRefByScanning(data []byte) (*XRefTable, error) {
	table := NewXRefTable()

	matches := objHeaderPattern.FindAllSubmatchIndex(data, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("recovery scan found no indirect objects")
	}

	maxObj := 0
	for _, m := range matches {
		numStr := data[m[2]:m[3]]
		genStr := data[m[4]:m[5]]

		num, err := parseDecimalBytes(numStr)
		if err != nil {
			continue
		}
		gen, err := parseDecimalBytes(genStr)
		if err != nil {
			continue
		}

		// A later occurrence of the same object number (e.g. after an
		// incremental update appended a fresh copy) should win, so later
		// matches simply overwrite earlier ones via Set.
		table.Set(num, &XRefEntry{
			Type:       XRefEntryInUse,
			Offset:     int64(m[0]),
			Generation: gen,
		})
		if num > maxObj {
			maxObj = num
		}
	}

	table.SetSize(maxObj + 1)
	return table, nil
}

// recoverTrailer finds the last "trailer" dictionary in the file, falling
// back to synthesizing one from a /Type /Catalog object discovered by the
// scan when no trailer keyword is present at all (pure xref-stream PDFs
// that are otherwise corrupt enough to need recovery).
func recoverTrailer(data []byte, table *XRefTable) (*Dictionary, error) {
	idx := bytes.LastIndex(data, []byte(KeywordTrailer))
	if idx < 0 {
		return synthesizeTrailer(data, table)
	}

	rest := data[idx+len(KeywordTrailer):]
	p := NewParser(bufio.NewReader(bytes.NewReader(rest)))
	obj, err := p.ParseObject()
	if err != nil {
		return synthesizeTrailer(data, table)
	}
	dict, ok := obj.(*Dictionary)
	if !ok {
		return synthesizeTrailer(data, table)
	}
	return dict, nil
}

// synthesizeTrailer builds a minimal trailer by locating the Catalog among
// the recovered objects, used only when no "trailer" keyword survives.
func synthesizeTrailer(data []byte, table *XRefTable) (*Dictionary, error) {
	for objNum := 0; objNum < table.Size(); objNum++ {
		entry, ok := table.GetEntry(objNum)
		if !ok || entry.Type != XRefEntryInUse {
			continue
		}
		if entry.Offset < 0 || int(entry.Offset) >= len(data) {
			continue
		}
		p := NewParser(bytes.NewReader(data[entry.Offset:]))
		ind, err := p.ParseIndirectObject()
		if err != nil {
			continue
		}
		dict, ok := ind.Object.(*Dictionary)
		if !ok {
			continue
		}
		if t := dict.GetName("Type"); t != nil && t.Value() == "Catalog" {
			trailer := NewDictionary()
			trailer.Set("Root", NewIndirectReference(objNum, entry.Generation))
			trailer.SetInteger("Size", int64(table.Size()))
			return trailer, nil
		}
	}
	return nil, fmt.Errorf("recovery scan found no /Catalog object")
}

func parseDecimalBytes(b []byte) (int, error) {
	n := 0
	if len(b) == 0 {
		return 0, fmt.Errorf("empty number")
	}
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("not a decimal digit: %q", c)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}
