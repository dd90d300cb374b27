package summary

import (
	"strings"
	"testing"
)

func TestBuildPromptIsDeterministic(t *testing.T) {
	t.Parallel()

	d := Descriptor{ID: "1", Title: "T", Authors: "A", Journal: "J", Year: "2020"}
	if BuildPrompt(d) != BuildPrompt(d) {
		t.Fatal("prompt must be a pure function of the descriptor")
	}
}

func TestBuildPromptCarriesFieldsVerbatim(t *testing.T) {
	t.Parallel()

	d := Descriptor{
		Title:   "Spectral Methods & You",
		Authors: "Doe, J.; Roe, R.",
		Journal: "Journal of Things",
		Year:    "2021",
		Note:    "Best paper award (2021)",
	}
	prompt := BuildPrompt(d)

	for _, want := range []string{d.Title, d.Authors, d.Journal, d.Year, d.Note} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptOmitsEmptyNote(t *testing.T) {
	t.Parallel()

	prompt := BuildPrompt(Descriptor{Title: "T", Authors: "A", Journal: "J", Year: "2020"})
	if strings.Contains(prompt, "Note:") {
		t.Fatalf("empty note must not appear:\n%s", prompt)
	}
}
