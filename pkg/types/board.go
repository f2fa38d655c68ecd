// Board is the stock entity: a piece of lumber that cuts are placed on.
package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Epsilon is the tolerance for dimension comparisons. Two dimensions closer
// than this are treated as equal throughout the planner.
const Epsilon = 1e-4

// Board parsing errors.
var (
	ErrInvalidBoard = errors.New("invalid board")
)

// Board describes one piece of stock lumber. Length runs along the grain,
// Width across it. Dimensions are unit-agnostic floats; the planner never
// converts them.
type Board struct {
	Length float64 `json:"length" yaml:"length"`
	Width  float64 `json:"width" yaml:"width"`
	ID     string  `json:"id" yaml:"id"`
}

// ParseBoard parses the LENGTHxWIDTH:ID notation, e.g. "96.5x5.5:A".
// Both dimensions must be positive and the ID must not be empty.
func ParseBoard(s string) (Board, error) {
	dims, id, ok := strings.Cut(s, ":")
	if !ok || id == "" {
		return Board{}, fmt.Errorf("%w: %q (want LENGTHxWIDTH:ID)", ErrInvalidBoard, s)
	}

	length, width, err := parseDimensions(dims)
	if err != nil {
		return Board{}, fmt.Errorf("%w: %q: %v", ErrInvalidBoard, s, err)
	}

	return Board{Length: length, Width: width, ID: id}, nil
}

// Area returns the board's total surface area.
func (b Board) Area() float64 {
	return b.Length * b.Width
}

func (b Board) String() string {
	return fmt.Sprintf("%gx%g:%s", b.Length, b.Width, b.ID)
}

// UnmarshalYAML accepts the string notation used in job files.
func (b *Board) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseBoard(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// parseDimensions parses "LENGTHxWIDTH" into two positive floats.
// Shared by the board and cut parsers.
func parseDimensions(s string) (length, width float64, err error) {
	l, w, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, fmt.Errorf("missing 'x' separator in %q", s)
	}
	length, err = strconv.ParseFloat(l, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad length %q", l)
	}
	width, err = strconv.ParseFloat(w, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad width %q", w)
	}
	if length <= 0 {
		return 0, 0, fmt.Errorf("length must be positive, got %g", length)
	}
	if width <= 0 {
		return 0, 0, fmt.Errorf("width must be positive, got %g", width)
	}
	return length, width, nil
}
