package cms

// Group is a named bucket of users. Handle is the stable machine name
// referenced by templates and queries; it is unique across groups.
type Group struct {
	ID     int64  `json:"id,omitempty"`
	Name   string `json:"name"`
	Handle string `json:"handle"`

	// Errors holds the per-field validation failures recorded by the last
	// save attempt. It is cleared at the start of every save.
	Errors []FieldError `json:"errors,omitempty"`
}

func (g *Group) AddError(field, message string) {
	g.Errors = append(g.Errors, FieldError{Field: field, Message: message})
}

func (g *Group) HasErrors() bool {
	return len(g.Errors) > 0
}

func (g *Group) ClearErrors() {
	g.Errors = nil
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username,omitempty"`
}

type Setting struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
}
