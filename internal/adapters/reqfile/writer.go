package reqfile

import (
	"io"
	"strings"

	"github.com/mrmachine/reqs/internal/core/domain"
	"go.trai.ch/zerr"
)

// Write renders the manifest back into manifest syntax: one entry per line in
// declaration order, purpose comments re-attached. Parsing the output again
// yields an equivalent manifest.
func Write(w io.Writer, m *domain.Manifest) error {
	var b strings.Builder

	if m.IndexURL != "" {
		b.WriteString("--index-url " + m.IndexURL + "\n")
	}

	for i := range m.Requirements {
		r := &m.Requirements[i]
		b.WriteString(r.String())
		if r.Comment != "" {
			b.WriteString(" # " + r.Comment)
		}
		b.WriteString("\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return zerr.Wrap(err, "failed to write manifest")
	}
	return nil
}
