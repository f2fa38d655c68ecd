package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCut(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Cut
		wantErr bool
	}{
		{
			name:  "simple entry",
			input: "2@12x4:Apron",
			want:  Cut{Count: 2, Length: 12, Width: 4, Name: "Apron"},
		},
		{
			name:  "name with spaces",
			input: "22@12.5x4.8:This has multiple words",
			want:  Cut{Count: 22, Length: 12.5, Width: 4.8, Name: "This has multiple words"},
		},
		{
			name:    "fractional count",
			input:   "1.2@44x8:Apron",
			wantErr: true,
		},
		{
			name:    "zero count",
			input:   "0@44x8:Apron",
			wantErr: true,
		},
		{
			name:    "negative count",
			input:   "-1@44x8:Apron",
			wantErr: true,
		},
		{
			name:    "zero length",
			input:   "1@0x8:Apron",
			wantErr: true,
		},
		{
			name:    "missing name separator",
			input:   "1@10x4",
			wantErr: true,
		},
		{
			name:    "missing count",
			input:   "12x4:Apron",
			wantErr: true,
		},
		{
			name:    "garbage",
			input:   "1.2.3.4",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCut(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidCut)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCutRotated(t *testing.T) {
	c := Cut{Count: 1, Length: 12, Width: 4, Name: "Apron"}
	r := c.Rotated()

	assert.Equal(t, 4.0, r.Length)
	assert.Equal(t, 12.0, r.Width)
	assert.Equal(t, "Apron", r.Name)
	// The receiver is unchanged.
	assert.Equal(t, 12.0, c.Length)
}

func TestCutArea(t *testing.T) {
	c := Cut{Count: 3, Length: 12, Width: 4, Name: "Apron"}
	// Area is per piece; Count does not multiply it.
	assert.InDelta(t, 48.0, c.Area(), Epsilon)
}

func TestCutString(t *testing.T) {
	c := Cut{Count: 2, Length: 12, Width: 4, Name: "Apron"}
	assert.Equal(t, "2@12x4:Apron", c.String())

	parsed, err := ParseCut(c.String())
	require.NoError(t, err)
	assert.Equal(t, c, parsed)
}
