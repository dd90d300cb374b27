package summary

import (
	"fmt"
	"strings"

	"github.com/folio-space/core/internal/models"
)

// Descriptor is the read-only publication data a prompt is derived from.
type Descriptor struct {
	ID      string
	Title   string
	Authors string
	Journal string
	Year    string
	Note    string
}

// DescriptorFromModel builds a Descriptor from a stored publication.
func DescriptorFromModel(p *models.PublicationModel) Descriptor {
	return Descriptor{
		ID:      p.ID,
		Title:   p.Title,
		Authors: p.Authors,
		Journal: p.Journal,
		Year:    p.Year,
		Note:    p.Note,
	}
}

// BuildPrompt derives the summarization prompt from a descriptor and
// nothing else. The note, when present, is carried verbatim.
func BuildPrompt(d Descriptor) string {
	var b strings.Builder
	b.WriteString("Provide a short, 2-3 sentence summary of the following academic publication for a general audience. Avoid jargon and explain why the work matters.\n\n")
	fmt.Fprintf(&b, "Title: %s\n", d.Title)
	fmt.Fprintf(&b, "Authors: %s\n", d.Authors)
	fmt.Fprintf(&b, "Journal: %s\n", d.Journal)
	fmt.Fprintf(&b, "Year: %s\n", d.Year)
	if d.Note != "" {
		fmt.Fprintf(&b, "Note: %s\n", d.Note)
	}
	return b.String()
}
