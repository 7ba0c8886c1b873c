package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// naMarker is the token gota treats as missing once cells are normalized.
const naMarker = "NaN"

// Options controls how raw CSV bytes are parsed.
type Options struct {
	// Delimiter for CSV. If 0, sniffs among ',', ';', '\t', '|' on the header line.
	Delimiter rune
	// NAValues are cell contents (after trimming) treated as missing.
	NAValues []string
}

// DefaultNAValues mirrors the pandas read_csv defaults.
func DefaultNAValues() []string {
	return []string{
		"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
		"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a", "nan", "null",
	}
}

// DefaultOptions returns parsing defaults.
func DefaultOptions() Options {
	return Options{NAValues: DefaultNAValues()}
}

// Parse turns raw CSV bytes into a Dataset. The first record is the header.
func Parse(name string, raw []byte, opt Options) (*Dataset, error) {
	fail := func(line int, err error) (*Dataset, error) {
		return nil, &ParseError{Name: name, Line: line, Err: err}
	}
	text, err := decode(raw)
	if err != nil {
		return fail(0, err)
	}
	if len(bytes.TrimSpace(text)) == 0 {
		return fail(0, ErrEmpty)
	}

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(text)
	}
	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return fail(csvLine(err), err)
	}
	if len(header) == 1 && strings.TrimSpace(header[0]) == "" {
		return fail(1, ErrNoColumns)
	}
	names := normalizeHeader(header)
	width := len(names)

	na := make(map[string]struct{}, len(opt.NAValues))
	for _, v := range opt.NAValues {
		na[v] = struct{}{}
	}

	cols := make([][]string, width)
	missing := make([][]bool, width)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fail(csvLine(err), err)
		}
		if len(rec) > width {
			line, _ := r.FieldPos(0)
			return fail(line, fmt.Errorf("%w: expected %d, saw %d", ErrFieldCount, width, len(rec)))
		}
		for j := 0; j < width; j++ {
			v := ""
			if j < len(rec) {
				v = strings.TrimSpace(rec[j])
			}
			_, isNA := na[v]
			if v == naMarker {
				isNA = true
			}
			cols[j] = append(cols[j], v)
			missing[j] = append(missing[j], isNA)
		}
	}
	if width == 0 || len(cols[0]) == 0 {
		return fail(0, ErrNoRows)
	}

	kinds := make([]Kind, width)
	types := make(map[string]series.Type, width)
	for j := range cols {
		kinds[j] = inferKind(cols[j], missing[j])
		types[names[j]] = kinds[j].seriesType()
	}

	nrows := len(cols[0])
	records := make([][]string, 0, nrows+1)
	records = append(records, names)
	for i := 0; i < nrows; i++ {
		rec := make([]string, width)
		for j := range cols {
			if missing[j][i] {
				rec[j] = naMarker
			} else {
				rec[j] = cols[j][i]
			}
		}
		records = append(records, rec)
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.WithTypes(types),
		dataframe.NaNValues([]string{naMarker}),
	)
	if df.Err != nil {
		return fail(0, df.Err)
	}
	return &Dataset{
		id:    uuid.NewString(),
		name:  name,
		df:    df,
		names: names,
		kinds: kinds,
	}, nil
}

// decode returns UTF-8 text without a byte order mark.
func decode(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, ErrEmpty
	}
	utf16 := bytes.HasPrefix(raw, []byte{0xFF, 0xFE}) || bytes.HasPrefix(raw, []byte{0xFE, 0xFF})
	if !utf16 {
		if !utf8.Valid(raw) {
			return nil, ErrEncoding
		}
		if bytes.IndexByte(raw, 0) >= 0 {
			return nil, ErrBinary
		}
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	if bytes.IndexByte(out, 0) >= 0 {
		return nil, ErrBinary
	}
	return out, nil
}

// sniffDelimiter counts candidate separators outside quotes on the first line.
func sniffDelimiter(text []byte) rune {
	line := text
	if i := bytes.IndexByte(text, '\n'); i >= 0 {
		line = text[:i]
	}
	candidates := []rune{',', ';', '\t', '|'}
	counts := make(map[rune]int, len(candidates))
	quoted := false
	for _, c := range string(line) {
		if c == '"' {
			quoted = !quoted
			continue
		}
		if !quoted {
			counts[c]++
		}
	}
	best, bestN := ',', 0
	for _, c := range candidates {
		if counts[c] > bestN {
			best, bestN = c, counts[c]
		}
	}
	return best
}

// normalizeHeader trims names, fills blanks and de-duplicates the way pandas does.
func normalizeHeader(header []string) []string {
	names := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		names[i] = h
	}
	counts := make(map[string]int, len(names))
	for i, n := range names {
		cur := counts[n]
		for cur > 0 {
			counts[n] = cur + 1
			n = fmt.Sprintf("%s.%d", n, cur)
			cur = counts[n]
		}
		names[i] = n
		counts[n] = cur + 1
	}
	return names
}

func csvLine(err error) int {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return pe.Line
	}
	return 0
}
