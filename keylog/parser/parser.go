package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dasdy/nuhxboard/model"
)

// LineParser turns one line of device output into a key event.
// A nil event with a nil error means the line carries no event.
type LineParser interface {
	ParseLine(line string) (*model.KeyEvent, error)
}

// ZMKParser reads ZMK debug log lines. The key position becomes the event code.
type ZMKParser struct{}

func (ZMKParser) ParseLine(line string) (*model.KeyEvent, error) {
	// Serial logs are full of blank keep-alive lines.
	if strings.TrimSpace(line) == "" {
		return nil, nil
	}

	splits := strings.Split(line, " ")

	var (
		position   uint64
		foundCount int
		pressed    bool
		err        error
	)

	ix := 0
	limit := len(splits) - 1 // We always care about the next token, so stop before it's too late

	for ix < limit {
		curItem := splits[ix]
		nextItem := strings.TrimRight(splits[ix+1], ",")

		switch curItem {
		case "Row:", "col:":
			if _, err = strconv.Atoi(nextItem); err != nil {
				return nil, fmt.Errorf("could not parse %s: %w", strings.ToLower(strings.TrimSuffix(curItem, ":")), err)
			}

			ix++
			foundCount++
		case "position:":
			position, err = strconv.ParseUint(nextItem, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("could not parse position: %w", err)
			}

			ix++
			foundCount++
		case "pressed:":
			// Trim the reset escape code from the output.
			nextItem = strings.TrimSuffix(nextItem, "\x1b[0m")

			switch nextItem {
			case "true":
				pressed = true
			case "false":
				pressed = false
			default:
				return nil, fmt.Errorf("pressed value unexpected: '%s'", nextItem)
			}

			ix++
			foundCount++
		default:
		}

		ix++
	}

	if foundCount == 4 {
		return &model.KeyEvent{Code: uint32(position), Pressed: pressed}, nil
	}

	return nil, nil
}

const (
	xinputEvent      = "EVENT type"
	xinputKeyPress   = "2"
	xinputKeyRelease = "3"
	xinputDetail     = "detail:"
)

// XInputParser reads `xinput test-xi2 --root` output. An EVENT header arms the parser,
// the following detail line carries the key code.
// It keeps state between lines, so one instance serves one stream.
type XInputParser struct {
	armed   bool
	pressed bool
}

func (p *XInputParser) ParseLine(line string) (*model.KeyEvent, error) {
	trimmed := strings.TrimSpace(line)

	switch {
	case strings.HasPrefix(trimmed, xinputEvent):
		fields := strings.Fields(strings.TrimPrefix(trimmed, xinputEvent))

		p.armed = false
		if len(fields) > 0 {
			switch fields[0] {
			case xinputKeyPress:
				p.armed, p.pressed = true, true
			case xinputKeyRelease:
				p.armed, p.pressed = true, false
			}
		}

		return nil, nil
	case strings.HasPrefix(trimmed, xinputDetail):
		if !p.armed {
			return nil, nil
		}

		p.armed = false

		fields := strings.Fields(strings.TrimPrefix(trimmed, xinputDetail))
		if len(fields) == 0 {
			return nil, fmt.Errorf("missing key code in detail line: '%s'", line)
		}

		code, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("could not parse key code: %w", err)
		}

		return &model.KeyEvent{Code: uint32(code), Pressed: p.pressed}, nil
	default:
		return nil, nil
	}
}

// ForSource picks the parser that understands the given input source.
func ForSource(source string) (LineParser, error) {
	switch source {
	case "xinput", "stdin":
		return &XInputParser{}, nil
	case "serial":
		return ZMKParser{}, nil
	default:
		return nil, fmt.Errorf("unknown input source %q", source)
	}
}
