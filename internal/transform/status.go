package transform

import (
	"github.com/PolarWolf314/envseal/internal/dotenv"
	"github.com/PolarWolf314/envseal/internal/envelope"
)

// Status counts the assignments of a document by sealing state.
type Status struct {
	// Sealed values hold a well-formed token.
	Sealed int
	// Marked values carry the prefix but no valid token yet.
	Marked int
	// Plain values have no prefix.
	Plain int
	// Invalid lines could not be parsed.
	Invalid int

	// SealedKeys, MarkedKeys and PlainKeys list keys in file order.
	SealedKeys []string
	MarkedKeys []string
	PlainKeys  []string
}

// Total is the number of assignments.
func (s Status) Total() int {
	return s.Sealed + s.Marked + s.Plain
}

// Inspect classifies every assignment of doc without unsealing anything.
func Inspect(doc *dotenv.Document) Status {
	var s Status
	for _, line := range doc.Lines {
		switch line.Kind {
		case dotenv.KindInvalid:
			s.Invalid++
		case dotenv.KindAssignment:
			switch {
			case envelope.IsSealed(line.Value):
				s.Sealed++
				s.SealedKeys = append(s.SealedKeys, line.Key)
			case envelope.HasMarker(line.Value):
				s.Marked++
				s.MarkedKeys = append(s.MarkedKeys, line.Key)
			default:
				s.Plain++
				s.PlainKeys = append(s.PlainKeys, line.Key)
			}
		}
	}
	return s
}
