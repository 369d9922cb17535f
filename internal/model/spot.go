package model

// Spot is a tourist spot record ("tempat wisata").
// Name is the document key in every backend; writing a spot with an existing name replaces it.
type Spot struct {
	Name        string  `json:"nama"`
	Description string  `json:"deskripsi"`
	ImageRef    *string `json:"gambarUriString,omitempty"`
}

// Document field names shared by all document store backends.
const (
	FieldName        = "nama"
	FieldDescription = "deskripsi"
	FieldImageRef    = "gambarUriString"
)

// WithImageRef returns a copy of s pointing at ref.
func (s Spot) WithImageRef(ref string) Spot {
	s.ImageRef = &ref
	return s
}

// Fields renders the spot as a schema-less document. An absent image reference is omitted.
func (s Spot) Fields() map[string]any {
	f := map[string]any{
		FieldName:        s.Name,
		FieldDescription: s.Description,
	}
	if s.ImageRef != nil {
		f[FieldImageRef] = *s.ImageRef
	}
	return f
}

// SpotFromFields reads a document back into a Spot.
// Missing or non-string name and description become "", a missing image reference stays nil.
func SpotFromFields(f map[string]any) Spot {
	var s Spot
	if v, ok := f[FieldName].(string); ok {
		s.Name = v
	}
	if v, ok := f[FieldDescription].(string); ok {
		s.Description = v
	}
	if v, ok := f[FieldImageRef].(string); ok {
		s.ImageRef = &v
	}
	return s
}
