// Package statement turns raw bank-export text into normalized rows.
// Bank CSV dialects disagree on delimiter (comma vs semicolon), date
// order, and decimal separator; this package absorbs all three.
package statement

import "strings"

// Table is a parsed statement: lower-cased headers plus a grid of
// trimmed string cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

const sniffLines = 5

// DetectDelimiter samples the first lines of text and picks the more
// frequent of comma and semicolon. Ties favor comma.
func DetectDelimiter(text string) rune {
	sample := text
	if i := nthLineEnd(text, sniffLines); i >= 0 {
		sample = text[:i]
	}
	if strings.Count(sample, ";") > strings.Count(sample, ",") {
		return ';'
	}
	return ','
}

func nthLineEnd(text string, n int) int {
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			n--
			if n == 0 {
				return i
			}
		}
	}
	return -1
}

// Parse splits raw statement text into headers and rows using the
// detected delimiter. Quoting follows RFC 4180: a quote toggles quoted
// mode, a doubled quote inside a quoted field is a literal quote.
// Malformed quoting never fails; an unterminated quote absorbs the rest
// of the input into one field. Fields are trimmed and fully blank rows
// dropped. The first non-blank row becomes the headers.
func Parse(text string) Table {
	delim := DetectDelimiter(text)

	var (
		rows   [][]string
		row    []string
		field  strings.Builder
		quoted bool
	)

	endField := func() {
		row = append(row, strings.TrimSpace(field.String()))
		field.Reset()
	}
	endRow := func() {
		endField()
		if !blankRow(row) {
			rows = append(rows, row)
		}
		row = nil
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if quoted && i+1 < len(runes) && runes[i+1] == '"' {
				field.WriteRune('"') // escaped quote
				i++
			} else {
				quoted = !quoted
			}
		case c == delim && !quoted:
			endField()
		case c == '\r' && !quoted:
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			endRow()
		case c == '\n' && !quoted:
			endRow()
		default:
			field.WriteRune(c)
		}
	}
	if field.Len() > 0 || len(row) > 0 {
		endRow()
	}

	if len(rows) == 0 {
		return Table{}
	}

	headers := rows[0]
	for i, h := range headers {
		headers[i] = strings.ToLower(h)
	}
	return Table{Headers: headers, Rows: rows[1:]}
}

func blankRow(row []string) bool {
	for _, f := range row {
		if f != "" {
			return false
		}
	}
	return true
}
