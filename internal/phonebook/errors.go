package phonebook

// ValidationError reports raw input that could not become a Phone or Birthday.
type ValidationError struct {
	Field   string // "phone" or "birthday"
	Value   string // the rejected raw input
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports a lookup of a contact or phone that does not exist.
type NotFoundError struct {
	Kind    string // "contact" or "phone"
	Key     string
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

const (
	fieldPhone    = "phone"
	fieldBirthday = "birthday"
	kindContact   = "contact"
	kindPhone     = "phone"
)
