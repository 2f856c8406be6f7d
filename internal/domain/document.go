package domain

// Document is a single knowledge snippet in the advisory corpus.
// The corpus is built once at startup and never mutated afterwards, so
// documents may be shared freely across concurrent requests.
type Document struct {
	ID       string         `json:"id" yaml:"id"`
	Text     string         `json:"text" yaml:"text"`
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// CloneMetadata returns a copy of the document metadata map, never nil.
// Per-query annotations (similarity scores) go onto the copy so the shared
// corpus document stays untouched.
func (d Document) CloneMetadata() map[string]any {
	out := make(map[string]any, len(d.Metadata)+1)
	for k, v := range d.Metadata {
		out[k] = v
	}
	return out
}
