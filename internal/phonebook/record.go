package phonebook

import (
	"strings"

	"github.com/tartampluch/go-phonebook/internal/config"
)

// Record is the complete stored state for one contact.
// The name is fixed at creation; phones keep insertion order and may repeat.
type Record struct {
	name     string
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates an empty record for name.
func NewRecord(name string) *Record {
	return &Record{name: name}
}

// Name returns the directory key of the record.
func (r *Record) Name() string {
	return r.name
}

// Phones returns a copy of the phone sequence.
func (r *Record) Phones() []Phone {
	out := make([]Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// AddPhone validates raw and appends it.
func (r *Record) AddPhone(raw string) error {
	p, err := ParsePhone(raw)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone drops every phone equal to value. Missing values are ignored.
func (r *Record) RemovePhone(value string) {
	kept := r.phones[:0]
	for _, p := range r.phones {
		if p.digits != value {
			kept = append(kept, p)
		}
	}
	// Clear the tail so the backing array holds no stale entries.
	clear(r.phones[len(kept):])
	r.phones = kept
}

// EditPhone replaces the first phone equal to oldValue with newValue, keeping its position.
// The record is untouched when oldValue is absent or newValue is invalid.
func (r *Record) EditPhone(oldValue, newValue string) error {
	idx := r.indexOf(oldValue)
	if idx < 0 {
		return &NotFoundError{Kind: kindPhone, Key: oldValue, Message: config.ErrPhoneNotFound}
	}
	p, err := ParsePhone(newValue)
	if err != nil {
		return err
	}
	r.phones[idx] = p
	return nil
}

// FindPhone returns the first phone equal to value.
func (r *Record) FindPhone(value string) (Phone, bool) {
	idx := r.indexOf(value)
	if idx < 0 {
		return Phone{}, false
	}
	return r.phones[idx], true
}

// AddBirthday validates raw and sets it, replacing any previous birthday.
// On failure the previous birthday is kept.
func (r *Record) AddBirthday(raw string) error {
	b, err := ParseBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// Clone returns a deep copy that shares no state with r.
func (r *Record) Clone() *Record {
	c := &Record{name: r.name, phones: r.Phones()}
	if r.birthday != nil {
		b := *r.birthday
		c.birthday = &b
	}
	return c
}

// String renders "Contact name: <name>, phones: <p1>; <p2>" with an optional birthday suffix.
func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteString("Contact name: ")
	sb.WriteString(r.name)
	sb.WriteString(", phones: ")
	for i, p := range r.phones {
		if i > 0 {
			sb.WriteString(config.PhoneSeparator)
		}
		sb.WriteString(p.digits)
	}
	if r.birthday != nil {
		sb.WriteString(", birthday: ")
		sb.WriteString(r.birthday.String())
	}
	return sb.String()
}

func (r *Record) indexOf(value string) int {
	for i, p := range r.phones {
		if p.digits == value {
			return i
		}
	}
	return -1
}
