// Cut is the demand entity: a piece the cutlist requires from the stock.
package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Cut parsing errors.
var (
	ErrInvalidCut = errors.New("invalid cut")
)

// Cut describes one cutlist entry: Count pieces of Length x Width, labeled
// with Name. The solver expands Count into individual pieces before placing.
type Cut struct {
	Count  int     `json:"count" yaml:"count"`
	Length float64 `json:"length" yaml:"length"`
	Width  float64 `json:"width" yaml:"width"`
	Name   string  `json:"name" yaml:"name"`
}

// ParseCut parses the COUNT@LENGTHxWIDTH:NAME notation, e.g. "2@12x4:Apron".
// Count must be a positive integer and both dimensions positive. The name may
// contain spaces.
func ParseCut(s string) (Cut, error) {
	countStr, rest, ok := strings.Cut(s, "@")
	if !ok {
		return Cut{}, fmt.Errorf("%w: %q (want COUNT@LENGTHxWIDTH:NAME)", ErrInvalidCut, s)
	}

	count, err := strconv.Atoi(countStr)
	if err != nil {
		return Cut{}, fmt.Errorf("%w: %q: bad count %q", ErrInvalidCut, s, countStr)
	}
	if count < 1 {
		return Cut{}, fmt.Errorf("%w: %q: count must be at least 1, got %d", ErrInvalidCut, s, count)
	}

	dims, name, ok := strings.Cut(rest, ":")
	if !ok {
		return Cut{}, fmt.Errorf("%w: %q (want COUNT@LENGTHxWIDTH:NAME)", ErrInvalidCut, s)
	}

	length, width, err := parseDimensions(dims)
	if err != nil {
		return Cut{}, fmt.Errorf("%w: %q: %v", ErrInvalidCut, s, err)
	}

	return Cut{Count: count, Length: length, Width: width, Name: name}, nil
}

// Area returns the surface area of a single piece, ignoring Count.
func (c Cut) Area() float64 {
	return c.Length * c.Width
}

// Rotated returns the cut turned 90 degrees, with Length and Width swapped.
func (c Cut) Rotated() Cut {
	c.Length, c.Width = c.Width, c.Length
	return c
}

func (c Cut) String() string {
	return fmt.Sprintf("%d@%gx%g:%s", c.Count, c.Length, c.Width, c.Name)
}

// UnmarshalYAML accepts the string notation used in job files.
func (c *Cut) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseCut(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
