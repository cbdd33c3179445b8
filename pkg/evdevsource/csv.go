package evdevsource

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/guettli/eventqueue/pkg/types"
	"github.com/holoplot/go-evdev"
)

var ErrMalformedCsvLine = errors.New("malformed csv line")

var codesFromString = map[evdev.EvType]map[string]evdev.EvCode{
	evdev.EV_SYN: evdev.SYNFromString,
	evdev.EV_KEY: evdev.KEYFromString,
	evdev.EV_REL: evdev.RELFromString,
	evdev.EV_ABS: evdev.ABSFromString,
	evdev.EV_MSC: evdev.MSCFromString,
	evdev.EV_LED: evdev.LEDFromString,
}

// ParseCsvLine parses a line like "1712345678;123456;EV_KEY;KEY_A;down".
// Codes and values may also be given as numbers.
func ParseCsvLine(line string) (evdev.InputEvent, error) {
	var ev evdev.InputEvent
	parts := strings.Split(line, ";")
	if len(parts) != 5 {
		return ev, fmt.Errorf("%w: expected 5 columns: %q", ErrMalformedCsvLine, line)
	}
	sec, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return ev, fmt.Errorf("%w: failed to parse col 1 (sec) from line %q: %w", ErrMalformedCsvLine, line, err)
	}
	usec, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return ev, fmt.Errorf("%w: failed to parse col 2 (usec) from line %q: %w", ErrMalformedCsvLine, line, err)
	}

	// EV_KEY, EV_SYN, EV_MSC, ...
	evType, ok := evdev.EVFromString[parts[2]]
	if !ok {
		return ev, fmt.Errorf("%w: failed to parse col 3 (type) from line %q", ErrMalformedCsvLine, line)
	}

	code, ok := codesFromString[evType][parts[3]]
	if !ok {
		n, err := strconv.ParseUint(parts[3], 10, 16)
		if err != nil {
			return ev, fmt.Errorf("%w: failed to parse col 4 (code) from line %q", ErrMalformedCsvLine, line)
		}
		code = evdev.EvCode(n)
	}

	var value int64
	switch parts[4] {
	case "up":
		value = UP
	case "down":
		value = DOWN
	case "repeat":
		value = REPEAT
	default:
		value, err = strconv.ParseInt(parts[4], 10, 32)
		if err != nil {
			return ev, fmt.Errorf("%w: failed to parse col 5 (value) from line %q: %w", ErrMalformedCsvLine, line, err)
		}
	}
	return evdev.InputEvent{
		Time:  timeStampToTimeval(types.AbsoluteTimePoint(sec*1_000_000 + usec)),
		Type:  evType,
		Code:  code,
		Value: int32(value),
	}, nil
}

// FormatCsvLine is the inverse of ParseCsvLine. The line ends with a
// newline.
func FormatCsvLine(ev evdev.InputEvent) string {
	code := strconv.Itoa(int(ev.Code))
	if name := evdev.CodeName(ev.Type, ev.Code); codesFromString[ev.Type][name] == ev.Code && name != "" {
		code = name
	}
	value := strconv.Itoa(int(ev.Value))
	if ev.Type == evdev.EV_KEY {
		switch ev.Value {
		case DOWN:
			value = "down"
		case UP:
			value = "up"
		case REPEAT:
			value = "repeat"
		}
	}
	return fmt.Sprintf("%d;%d;%s;%s;%s\n", ev.Time.Sec, ev.Time.Usec, evdev.TypeName(ev.Type), code, value)
}

// CsvEventReader reads events written by FormatCsvLine. Empty lines and
// lines starting with "#" are skipped.
type CsvEventReader struct {
	scanner *bufio.Scanner
	line    int
}

func NewCsvEventReader(r io.Reader) *CsvEventReader {
	return &CsvEventReader{scanner: bufio.NewScanner(r)}
}

func (c *CsvEventReader) ReadOne() (*evdev.InputEvent, error) {
	for {
		if !c.scanner.Scan() {
			if err := c.scanner.Err(); err != nil {
				return nil, fmt.Errorf("error reading: %w", err)
			}
			return nil, io.EOF
		}
		c.line++
		line := strings.TrimSpace(c.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ev, err := ParseCsvLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", c.line, err)
		}
		return &ev, nil
	}
}
