package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// WordSize is a processor word size in bits.
type WordSize int

// Supported word sizes.
const (
	WordSize32 WordSize = 32
	WordSize64 WordSize = 64
)

// CurrentWordSize is the word size this binary was compiled for.
func CurrentWordSize() WordSize {
	return WordSize(strconv.IntSize)
}

// Opposite returns the other supported word size.
func (w WordSize) Opposite() WordSize {
	if w == WordSize64 {
		return WordSize32
	}
	return WordSize64
}

// Suffix returns the host executable suffix for the word size.
func (w WordSize) Suffix() string {
	return "x" + strconv.Itoa(int(w))
}

// String returns the string representation.
func (w WordSize) String() string {
	return strconv.Itoa(int(w)) + "-bit"
}

// ParseWordSize accepts the spellings used in configuration and probe output.
func ParseWordSize(s string) (WordSize, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "32", "x32", "x86", "386", "32-bit":
		return WordSize32, nil
	case "64", "x64", "amd64", "arm64", "64-bit":
		return WordSize64, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownArchitecture, s)
	}
}

// Architecture is the outcome of the compatibility probe, resolved once per Acquire.
type Architecture int

const (
	// Native means the service can run inside the calling process.
	Native Architecture = iota
	// ForeignArchitecture means the service must run in a host of the opposite word size.
	ForeignArchitecture
)

// ResolveArchitecture maps a probe answer to an Architecture.
func ResolveArchitecture(compatible bool) Architecture {
	if compatible {
		return Native
	}
	return ForeignArchitecture
}

// String returns the string representation.
func (a Architecture) String() string {
	switch a {
	case Native:
		return "native"
	case ForeignArchitecture:
		return "foreign"
	default:
		return fmt.Sprintf("Architecture(%d)", int(a))
	}
}
