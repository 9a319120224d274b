package buffer

import "bytes"

// LineEnding specifies the line separator a document was read with.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // DOS: \r\n
	LineEndingCR                     // Classic Mac: \r
)

// String returns the escaped form of the separator.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the separator bytes.
func (le LineEnding) Sequence() []byte {
	switch le {
	case LineEndingCRLF:
		return []byte("\r\n")
	case LineEndingCR:
		return []byte("\r")
	default:
		return []byte("\n")
	}
}

// DetectLineEnding returns the most common separator in data, preferring LF
// when there are none or on a tie.
func DetectLineEnding(data []byte) LineEnding {
	var lf, crlf, cr int
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\r':
			if i+1 < len(data) && data[i+1] == '\n' {
				crlf++
				i++
			} else {
				cr++
			}
		case '\n':
			lf++
		}
	}

	switch {
	case crlf > lf && crlf >= cr:
		return LineEndingCRLF
	case cr > lf && cr > crlf:
		return LineEndingCR
	default:
		return LineEndingLF
	}
}

// normalize converts every separator in data to '\n'.
func normalize(data []byte, le LineEnding) []byte {
	switch le {
	case LineEndingCRLF:
		return bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	case LineEndingCR:
		return bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
	default:
		return data
	}
}
