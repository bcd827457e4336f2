package dataset

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/veloscope/stagereport/pkg/errors"
)

// Expected header names. The rider column is optional; the other three are
// required.
const (
	colRider      = "all_riders"
	colRiderClass = "rider_class"
	colStage      = "stage"
	colPoints     = "points"
	colStageClass = "stage_class"
)

// commentPrefix marks lines the parser skips entirely.
const commentPrefix = "/"

// Load reads the stage-results table from path. A missing or unreadable file
// yields an InputError; structural problems in the content yield a
// MalformedInputError naming the offending line.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewInputError(path, err)
	}
	defer f.Close()

	d, err := parse(f, path)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Parse reads the table from r. Used by tests and by callers that already
// hold the content in memory.
func Parse(r io.Reader) (*Dataset, error) {
	return parse(r, "")
}

func parse(r io.Reader, path string) (*Dataset, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		header  []string
		cols    map[string]int
		records []StageRecord
		lineNo  int
	)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}

		fields, err := splitFields(line)
		if err != nil {
			return nil, errors.NewMalformedInputError(path, lineNo, err.Error())
		}

		if header == nil {
			header = fields
			cols = make(map[string]int, len(fields))
			for i, name := range fields {
				cols[strings.ToLower(name)] = i
			}
			for _, required := range []string{colRiderClass, colPoints, colStageClass} {
				if _, ok := cols[required]; !ok {
					return nil, errors.NewMalformedInputError(path, lineNo, "header is missing required column "+strconv.Quote(required))
				}
			}
			continue
		}

		if len(fields) != len(header) {
			return nil, errors.NewMalformedInputError(path, lineNo,
				"row has "+strconv.Itoa(len(fields))+" columns, header has "+strconv.Itoa(len(header)))
		}

		points, err := strconv.ParseFloat(fields[cols[colPoints]], 64)
		if err != nil {
			return nil, errors.NewMalformedInputError(path, lineNo, "points value "+strconv.Quote(fields[cols[colPoints]])+" is not numeric")
		}

		rec := StageRecord{
			RiderClass: fields[cols[colRiderClass]],
			Points:     points,
			StageClass: fields[cols[colStageClass]],
		}
		if i, ok := cols[colRider]; ok {
			rec.Rider = fields[i]
		}
		if i, ok := cols[colStage]; ok {
			rec.Stage = fields[i]
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewInputError(path, err)
	}
	if header == nil {
		return nil, errors.NewMalformedInputError(path, lineNo, "no header row found")
	}

	_, hasRiders := cols[colRider]
	return newDataset(records, hasRiders)
}

// splitFields splits a line on runs of whitespace, honoring double-quoted
// fields so rider names such as "TEAM SKY" stay intact.
func splitFields(line string) ([]string, error) {
	var (
		fields  []string
		b       strings.Builder
		inQuote bool
		pending bool // a field (possibly empty, if quoted) is buffered
	)
	flush := func() {
		fields = append(fields, b.String())
		b.Reset()
		pending = false
	}
	for _, c := range line {
		switch {
		case inQuote:
			if c == '"' {
				inQuote = false
			} else {
				b.WriteRune(c)
			}
		case c == '"':
			inQuote = true
			pending = true
		case unicode.IsSpace(c):
			if pending {
				flush()
			}
		default:
			b.WriteRune(c)
			pending = true
		}
	}
	if inQuote {
		return nil, errors.New("unterminated quote")
	}
	if pending {
		flush()
	}
	return fields, nil
}
