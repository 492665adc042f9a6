package reservation

import (
	"strings"
	"unicode/utf8"
)

const (
	MaxNoteLength            = 500
	MinCancellationReasonLen = 10
	MaxCancellationReasonLen = 200
	MaxGuestCount            = 10
)

type Note struct {
	value string
}

func NewNote(value string) (Note, error) {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) > MaxNoteLength {
		return Note{}, ErrNoteTooLong
	}
	return Note{value: value}, nil
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}

type CancellationReason struct {
	value string
}

func NewCancellationReason(value string) (CancellationReason, error) {
	value = strings.TrimSpace(value)
	length := utf8.RuneCountInString(value)
	if length < MinCancellationReasonLen || length > MaxCancellationReasonLen {
		return CancellationReason{}, ErrInvalidCancellationReason
	}
	return CancellationReason{value: value}, nil
}

func (r CancellationReason) String() string {
	return r.value
}
