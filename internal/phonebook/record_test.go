package phonebook_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-phonebook/internal/config"
	"github.com/tartampluch/go-phonebook/internal/phonebook"
)

func newRecord(t *testing.T, name string, phones ...string) *phonebook.Record {
	t.Helper()
	r := phonebook.NewRecord(name)
	for _, p := range phones {
		require.NoError(t, r.AddPhone(p))
	}
	return r
}

func phoneStrings(r *phonebook.Record) []string {
	var out []string
	for _, p := range r.Phones() {
		out = append(out, p.String())
	}
	return out
}

func TestRecord_AddPhone(t *testing.T) {
	r := newRecord(t, "John", "1234567890", "1234567890")
	assert.Equal(t, []string{"1234567890", "1234567890"}, phoneStrings(r), "duplicates are kept")

	err := r.AddPhone("12345")
	require.Error(t, err)
	var verr *phonebook.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Len(t, r.Phones(), 2, "invalid phone must not be appended")
}

func TestRecord_RemovePhone(t *testing.T) {
	r := newRecord(t, "John", "1111111111", "2222222222", "1111111111", "3333333333")

	r.RemovePhone("1111111111")
	assert.Equal(t, []string{"2222222222", "3333333333"}, phoneStrings(r), "every match is removed")

	r.RemovePhone("9999999999")
	assert.Equal(t, []string{"2222222222", "3333333333"}, phoneStrings(r), "missing value is a no-op")
}

func TestRecord_EditPhone_Valid(t *testing.T) {
	r := newRecord(t, "John", "1111111111", "2222222222", "3333333333")

	require.NoError(t, r.EditPhone("2222222222", "4444444444"))

	phones := phoneStrings(r)
	assert.Len(t, phones, 3)
	assert.Equal(t, "4444444444", phones[1], "new value takes the old position")
	assert.NotContains(t, phones, "2222222222")
}

func TestRecord_EditPhone_FirstMatchOnly(t *testing.T) {
	r := newRecord(t, "John", "1111111111", "1111111111")

	require.NoError(t, r.EditPhone("1111111111", "2222222222"))
	assert.Equal(t, []string{"2222222222", "1111111111"}, phoneStrings(r))
}

func TestRecord_EditPhone_InvalidNewLeavesRecordUnchanged(t *testing.T) {
	r := newRecord(t, "John", "1111111111", "2222222222")
	require.NoError(t, r.AddBirthday("01.02.1990"))
	before := r.String()

	err := r.EditPhone("1111111111", "abc")
	require.Error(t, err)
	var verr *phonebook.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, before, r.String())
	assert.Equal(t, []string{"1111111111", "2222222222"}, phoneStrings(r))
}

func TestRecord_EditPhone_OldNotFound(t *testing.T) {
	r := newRecord(t, "John", "1111111111")

	err := r.EditPhone("2222222222", "3333333333")
	require.Error(t, err)

	var nerr *phonebook.NotFoundError
	require.True(t, errors.As(err, &nerr))
	assert.Equal(t, config.ErrPhoneNotFound, err.Error())
	assert.Equal(t, []string{"1111111111"}, phoneStrings(r))
}

func TestRecord_FindPhone(t *testing.T) {
	r := newRecord(t, "John", "1111111111", "2222222222")

	p, ok := r.FindPhone("2222222222")
	assert.True(t, ok)
	assert.Equal(t, "2222222222", p.String())

	_, ok = r.FindPhone("3333333333")
	assert.False(t, ok)
}

func TestRecord_AddBirthday(t *testing.T) {
	r := newRecord(t, "John", "1111111111")

	_, ok := r.Birthday()
	assert.False(t, ok)

	require.NoError(t, r.AddBirthday("15.04.1990"))
	b, ok := r.Birthday()
	require.True(t, ok)
	assert.Equal(t, "15.04.1990", b.String())

	require.Error(t, r.AddBirthday("1990-04-15"))
	b, _ = r.Birthday()
	assert.Equal(t, "15.04.1990", b.String(), "a failed update keeps the previous birthday")
}

func TestRecord_String(t *testing.T) {
	r := newRecord(t, "John", "1234567890", "5555555555")
	assert.Equal(t, "Contact name: John, phones: 1234567890; 5555555555", r.String())

	require.NoError(t, r.AddBirthday("01.01.2000"))
	assert.Equal(t, "Contact name: John, phones: 1234567890; 5555555555, birthday: 01.01.2000", r.String())

	empty := phonebook.NewRecord("Jane")
	assert.Equal(t, "Contact name: Jane, phones: ", empty.String())
}

func TestRecord_PhonesReturnsCopy(t *testing.T) {
	r := newRecord(t, "John", "1111111111")
	phones := r.Phones()
	phones[0] = phonebook.Phone{}

	assert.Equal(t, []string{"1111111111"}, phoneStrings(r))
}

func TestRecord_CloneIsIndependent(t *testing.T) {
	r := newRecord(t, "John", "1111111111")
	require.NoError(t, r.AddBirthday("01.01.2000"))

	c := r.Clone()
	require.NoError(t, r.AddPhone("2222222222"))
	require.NoError(t, r.AddBirthday("02.02.2002"))

	assert.Equal(t, "Contact name: John, phones: 1111111111, birthday: 01.01.2000", c.String())
}
