package contacts

import (
	"fmt"
	"strings"

	"github.com/assistant-bot/assistant-bot/internal/config"
)

// Record is one contact: an immutable name, phones in insertion order and an optional birthday.
type Record struct {
	name     string
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates an empty record for name.
func NewRecord(name string) *Record {
	return &Record{name: name}
}

// Name returns the key the record is stored under.
func (r *Record) Name() string {
	return r.name
}

// Phones returns a copy of the phone list.
func (r *Record) Phones() []Phone {
	out := make([]Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// AddPhone validates raw and appends it. Duplicates are allowed.
func (r *Record) AddPhone(raw string) error {
	p, err := NewPhone(raw)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone drops every phone equal to raw. Removing an absent phone is a no-op.
func (r *Record) RemovePhone(raw string) {
	kept := r.phones[:0]
	for _, p := range r.phones {
		if p.value != raw {
			kept = append(kept, p)
		}
	}
	r.phones = kept
}

// EditPhone replaces the first phone equal to oldRaw with newRaw.
// The record is untouched when oldRaw is absent or newRaw is invalid.
func (r *Record) EditPhone(oldRaw, newRaw string) error {
	idx := -1
	for i, p := range r.phones {
		if p.value == oldRaw {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errPhoneNotFound()
	}

	p, err := NewPhone(newRaw)
	if err != nil {
		return err
	}
	r.phones[idx] = p
	return nil
}

// FindPhone returns the first phone equal to raw.
func (r *Record) FindPhone(raw string) (Phone, bool) {
	for _, p := range r.phones {
		if p.value == raw {
			return p, true
		}
	}
	return Phone{}, false
}

// AddBirthday sets or overwrites the birthday.
func (r *Record) AddBirthday(raw string) error {
	b, err := NewBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// Birthday reports the birthday if one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// PhoneList joins the phones with "; ".
func (r *Record) PhoneList() string {
	values := make([]string, len(r.phones))
	for i, p := range r.phones {
		values[i] = p.value
	}
	return strings.Join(values, config.PhoneSeparator)
}

func (r *Record) String() string {
	s := fmt.Sprintf(config.RecordFormat, r.name, r.PhoneList())
	if r.birthday != nil {
		s += fmt.Sprintf(config.RecordBirthday, r.birthday.value)
	}
	return s
}
