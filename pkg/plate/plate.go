package plate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// MaxSequence is the highest numeric suffix a car plate can carry.
	MaxSequence = 9999
	// SequenceSpace is the size of the 4-digit suffix space.
	SequenceSpace = MaxSequence + 1
)

var (
	ErrInvalidFormat  = errors.New("invalid plate format")
	ErrInvalidPattern = errors.New("pattern must be exactly 3 letters")
	ErrNotCar         = errors.New("plate is not car-shaped")
)

var (
	carRegex        = regexp.MustCompile(`^[A-Z]{3}(\d{3}|\d{4})$`)
	motorcycleRegex = regexp.MustCompile(`^[A-Z]{2}\d{3}[A-Z]$`)
	separators      = strings.NewReplacer("-", "", " ", "", ".", "", "_", "", "\t", "")
)

// Normalize returns the canonical form of a plate: uppercase, no separators and,
// for cars, a zero-padded 4-digit number (ABC123 -> ABC0123).
func Normalize(raw string) (string, error) {
	p := separators.Replace(strings.ToUpper(strings.TrimSpace(raw)))

	switch {
	case carRegex.MatchString(p):
		if len(p) == 6 {
			return p[:3] + "0" + p[3:], nil
		}
		return p, nil
	case motorcycleRegex.MatchString(p):
		return p, nil
	}
	return "", fmt.Errorf("%w: %q (accepted: ABC123, ABC0123 or JK563Y)", ErrInvalidFormat, raw)
}

// IsCar reports whether p is a canonical car plate (LLLDDDD).
func IsCar(p string) bool {
	return len(p) == 7 && carRegex.MatchString(p)
}

// IsMotorcycle reports whether p is a canonical motorcycle plate (LLDDDL).
func IsMotorcycle(p string) bool {
	return motorcycleRegex.MatchString(p)
}

// Decompose splits a canonical car plate into its letter prefix and numeric suffix.
func Decompose(p string) (string, int, error) {
	if !IsCar(p) {
		return "", 0, fmt.Errorf("%w: %q", ErrNotCar, p)
	}
	n, err := strconv.Atoi(p[3:])
	if err != nil || n < 0 || n > MaxSequence {
		return "", 0, fmt.Errorf("%w: bad suffix in %q", ErrNotCar, p)
	}
	return p[:3], n, nil
}

// ValidatePattern accepts exactly three letters, in any case, and returns them uppercased.
func ValidatePattern(raw string) (string, error) {
	p := strings.ToUpper(strings.TrimSpace(raw))
	if len(p) != 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPattern, raw)
	}
	for _, c := range p {
		if c < 'A' || c > 'Z' {
			return "", fmt.Errorf("%w: %q", ErrInvalidPattern, raw)
		}
	}
	return p, nil
}
