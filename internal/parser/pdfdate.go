package parser

import (
	"strconv"
	"time"
)

// ParsePDFDate parses a PDF date string (PDF 1.7 7.9.4): D:YYYYMMDDHHmmSSOHH'mm'
// with every component after the four-digit year optional, trailing
// components simply truncating the string. O is +, -, or Z for the UTC
// relationship; a missing O (or a bare "D:YYYY...") is treated as Z.
func ParsePDFDate(s string) (time.Time, bool) {
	if len(s) >= 2 && s[0] == 'D' && s[1] == ':' {
		s = s[2:]
	}
	if len(s) < 4 {
		return time.Time{}, false
	}

	field := func(s string, start, n, def int) (int, string, bool) {
		if len(s) < start+n {
			return def, s, true
		}
		v, err := strconv.Atoi(s[start : start+n])
		if err != nil {
			return def, s, false
		}
		return v, s, true
	}

	year, _, ok := field(s, 0, 4, 0)
	if !ok {
		return time.Time{}, false
	}
	month, _, ok := field(s, 4, 2, 1)
	if !ok {
		return time.Time{}, false
	}
	day, _, ok := field(s, 6, 2, 1)
	if !ok {
		return time.Time{}, false
	}
	hour, _, ok := field(s, 8, 2, 0)
	if !ok {
		return time.Time{}, false
	}
	minute, _, ok := field(s, 10, 2, 0)
	if !ok {
		return time.Time{}, false
	}
	second, _, ok := field(s, 12, 2, 0)
	if !ok {
		return time.Time{}, false
	}

	loc := time.UTC
	if len(s) > 14 {
		switch s[14] {
		case 'Z':
			loc = time.UTC
		case '+', '-':
			offHour, _, ok := field(s, 15, 2, 0)
			if !ok {
				return time.Time{}, false
			}
			offMin := 0
			if len(s) >= 20 && s[17] == '\'' {
				offMin, _, ok = field(s, 18, 2, 0)
				if !ok {
					return time.Time{}, false
				}
			}
			offset := offHour*3600 + offMin*60
			if s[14] == '-' {
				offset = -offset
			}
			loc = time.FixedZone("", offset)
		}
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, loc), true
}
