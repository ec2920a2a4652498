package shotloader

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// CalFileName is the per-shot calibration config written by the DAS.
const CalFileName = "DAS.conf"

// calHeaderLines is the fixed preamble of DAS.conf; channel blocks start
// right after it.
const calHeaderLines = 64

// calBlockStride is the line count of one channel block: six description
// lines plus the blank separator.
const calBlockStride = 7

// CalEntry is the scale factor and physical unit for one channel.
type CalEntry struct {
	Factor float64
	Unit   string
}

// CalTable maps channel name to its calibration entry. Loaded once per shot
// and read-only afterwards.
type CalTable map[string]CalEntry

// LoadCalFile parses a DAS.conf calibration config. The file is decoded as
// UTF-8 with invalid bytes replaced rather than rejected; the DAS writes the
// header in whatever code page the console had. After the 64-line header,
// each 7-line block describes one channel: the bracketed name at offset 0,
// the unit as the last token of the line at offset 3, and the scale factor
// as the last token of the line at offset 4. Structural violations are
// fatal for the whole shot.
func LoadCalFile(path string) (CalTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ErrOpenFile{Filename: path, Err: err}
	}
	text := strings.ToValidUTF8(string(raw), "\uFFFD")

	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, &ErrOpenFile{Filename: path, Err: err}
	}

	table := make(CalTable)
	for base := calHeaderLines; base < len(lines); base += calBlockStride {
		if base+4 >= len(lines) {
			return nil, &ErrCalParse{Filename: path, Line: base + 1, Reason: "truncated channel block"}
		}

		name := strings.Trim(strings.TrimSpace(lines[base]), "[]")
		if name == "" {
			return nil, &ErrCalParse{Filename: path, Line: base + 1, Reason: "empty channel name"}
		}

		unitTokens := strings.Fields(lines[base+3])
		if len(unitTokens) == 0 {
			return nil, &ErrCalParse{Filename: path, Line: base + 4,
				Reason: fmt.Sprintf("missing unit for channel %q", name)}
		}
		unit := unitTokens[len(unitTokens)-1]

		valueTokens := strings.Fields(lines[base+4])
		if len(valueTokens) == 0 {
			return nil, &ErrCalParse{Filename: path, Line: base + 5,
				Reason: fmt.Sprintf("missing scale factor for channel %q", name)}
		}
		factor, err := strconv.ParseFloat(valueTokens[len(valueTokens)-1], 64)
		if err != nil {
			return nil, &ErrCalParse{Filename: path, Line: base + 5,
				Reason: fmt.Sprintf("bad scale factor for channel %q: %v", name, err)}
		}

		table[name] = CalEntry{Factor: factor, Unit: unit}
	}

	if configuration.Verbosity > 1 {
		message := fmt.Sprintf("%s: %d calibration entries", path, len(table))
		logger.Info(message, "calFile")
	}
	return table, nil
}
