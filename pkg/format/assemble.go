package format

import (
	"strings"
	"time"

	"github.com/LanceJenkinZA/DateSense/pkg/types"
	"github.com/ncruces/go-strftime"
)

// Assemble renders an assignment as a strftime-style format string.
// Percent signs inside literal separators are escaped as %% so the output
// is unambiguous when fed back to a formatter.
func Assemble(a *types.Assignment) string {
	var b strings.Builder
	for _, seg := range a.Segments {
		if seg.Directive != "" {
			b.WriteString(seg.Directive)
			continue
		}
		b.WriteString(strings.ReplaceAll(seg.Literal, "%", "%%"))
	}
	return b.String()
}

// Sample formats t with a detected format string, showing what inputs
// matching that format look like.
func Sample(layout string, t time.Time) string {
	return strftime.Format(layout, t)
}
