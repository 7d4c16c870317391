package gameboy

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Write is a single scripted write.
type Write struct {
	Cycle   uint64 // T-cycles elapsed before the write is applied
	Address uint16
	Value   uint8
}

func (w Write) String() string {
	return fmt.Sprintf("%d: %04X <- %02X", w.Cycle, w.Address, w.Value)
}

// ParseScript reads a write script. Each line holds a decimal cycle, a
// hexadecimal address and a hexadecimal value, separated by white
// space:
//
//	# enable sprites after the first line
//	456 FF40 93
//	456 0xFF48 0xE4
//
// Everything after a # is ignored, as are blank lines.
func ParseScript(r io.Reader) ([]Write, error) {
	var script []Write
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("script line %d: expected 3 fields, got %d", n, len(fields))
		}

		cycle, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("script line %d: cycle: %w", n, err)
		}
		addr, err := parseHex(fields[1], 16)
		if err != nil {
			return nil, fmt.Errorf("script line %d: address: %w", n, err)
		}
		value, err := parseHex(fields[2], 8)
		if err != nil {
			return nil, fmt.Errorf("script line %d: value: %w", n, err)
		}
		script = append(script, Write{Cycle: cycle, Address: uint16(addr), Value: uint8(value)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return script, nil
}

func parseHex(s string, bits int) (uint64, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return strconv.ParseUint(s, 16, bits)
}
