package pipeline

// Header holds the "- **Key**: value" metadata of a description.
// A zero Header has every value empty, which renders as an empty field.
type Header struct {
	Points   string // Storypoints
	Risk     string // Risiko
	Priority string // Priorisierung
}

// Header keys as they appear in issue descriptions.
const (
	KeyStorypoints   = "Storypoints"
	KeyRisiko        = "Risiko"
	KeyPriorisierung = "Priorisierung"
)

// set assigns value to the field named by key. Unknown keys are ignored.
func (h *Header) set(key, value string) {
	switch key {
	case KeyStorypoints:
		h.Points = value
	case KeyRisiko:
		h.Risk = value
	case KeyPriorisierung:
		h.Priority = value
	}
}

// ChecklistItem is one "- [ ]" or "- [x]" acceptance criterion.
type ChecklistItem struct {
	Done bool
	Text string
}

// Fields is everything extracted from one description.
type Fields struct {
	Header    Header
	Checklist []ChecklistItem
	Body      string // code spans already rewritten, not yet escaped
	HasBody   bool
}
