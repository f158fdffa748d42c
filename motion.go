package envelope

import (
	"os"
	"strconv"
	"strings"
)

// MotionQuery reports whether the user prefers reduced motion. It is
// evaluated on every seed, never cached.
type MotionQuery func() bool

// StaticMotion returns a MotionQuery with a fixed answer.
func StaticMotion(reduce bool) MotionQuery {
	return func() bool { return reduce }
}

// EnvMotion returns a MotionQuery that reads the named environment variable
// at each evaluation. Any value strconv.ParseBool accepts as true, or
// "reduce", counts as a reduced-motion preference.
func EnvMotion(key string) MotionQuery {
	return func() bool {
		v := strings.TrimSpace(os.Getenv(key))
		if strings.EqualFold(v, "reduce") {
			return true
		}
		b, err := strconv.ParseBool(v)
		return err == nil && b
	}
}

// AnyMotion combines queries; the preference holds if any of them reports it.
func AnyMotion(qs ...MotionQuery) MotionQuery {
	return func() bool {
		for _, q := range qs {
			if q != nil && q() {
				return true
			}
		}
		return false
	}
}

// FieldState is the lifecycle of a particle field. Disabled is terminal.
type FieldState uint8

const (
	FieldActive   FieldState = iota // may be seeded and run
	FieldDisabled                   // reduced motion or missing drawing context
)

func (s FieldState) String() string {
	if s == FieldDisabled {
		return "disabled"
	}
	return "active"
}

// gate applies the reduced-motion check to f. It reports whether seeding may
// proceed. When the preference is set the field is disabled and its surface
// removed from the document; an already-removed surface stays removed.
func (f *Field) gate() bool {
	if f.state == FieldDisabled {
		return false
	}
	if f.motion != nil && f.motion() {
		f.disable("reduced motion", true)
		return false
	}
	return true
}

func (f *Field) disable(reason string, removeSurface bool) {
	f.stop()
	f.state = FieldDisabled
	if removeSurface && f.surface != nil {
		f.surface.Remove()
	}
	if globalDebug {
		debugLogf("field %s disabled: %s", f.name, reason)
	}
}
