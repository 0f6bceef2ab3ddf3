package render

import (
	"errors"
	"fmt"
	"strings"
)

// TransparencyMode selects how partially transparent structures are composited
type TransparencyMode int

const (
	// TransparencyNone renders everything opaque
	TransparencyNone TransparencyMode = iota
	// TransparencySimple blends in draw order
	TransparencySimple
	// TransparencyPretty depth-peels against the scene min-depth texture
	TransparencyPretty
)

// ErrUnknownTransparencyMode is returned for names ParseTransparencyMode does not know
var ErrUnknownTransparencyMode = errors.New("unknown transparency mode")

var transparencyModeNames = [...]string{
	TransparencyNone:   "None",
	TransparencySimple: "Simple",
	TransparencyPretty: "Pretty",
}

func (m TransparencyMode) String() string {
	if m < 0 || int(m) >= len(transparencyModeNames) {
		return fmt.Sprintf("TransparencyMode(%d)", int(m))
	}
	return transparencyModeNames[m]
}

// ParseTransparencyMode accepts the names returned by String, case-insensitively
func ParseTransparencyMode(name string) (TransparencyMode, error) {
	for i, n := range transparencyModeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return TransparencyMode(i), nil
		}
	}
	return TransparencyNone, fmt.Errorf("%w: %q", ErrUnknownTransparencyMode, name)
}
