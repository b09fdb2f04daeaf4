package state

import (
	"time"

	"github.com/google/uuid"
)

// Clock reports the current time. Tests substitute a fixed sequence.
type Clock func() time.Time

// IDSource yields a unique stroke id on every call.
type IDSource func() string

func newStrokeID() string {
	return "stroke_" + uuid.NewString()
}
