package hotspot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegion_ContainsSingleLine(t *testing.T) {
	r := Region{StartLine: 2, StartColumn: 5, EndLine: 2, EndColumn: 10}

	assert.True(t, r.Contains(2, 5))
	assert.True(t, r.Contains(2, 9))
	assert.False(t, r.Contains(2, 10))
	assert.False(t, r.Contains(2, 4))
	assert.False(t, r.Contains(1, 5))
	assert.False(t, r.Contains(3, 5))
}

func TestRegion_ContainsMultiLine(t *testing.T) {
	r := Region{StartLine: 1, StartColumn: 8, EndLine: 3, EndColumn: 2}

	assert.True(t, r.Contains(1, 8))
	assert.True(t, r.Contains(1, 100))
	assert.True(t, r.Contains(2, 0))
	assert.True(t, r.Contains(3, 1))
	assert.False(t, r.Contains(3, 2))
	assert.False(t, r.Contains(1, 7))
	assert.False(t, r.Contains(0, 8))
}

func TestNew_AssignsStableID(t *testing.T) {
	h := New(Link, Region{})
	assert.NotEqual(t, h.ID.String(), "")

	other := New(Link, Region{})
	assert.NotEqual(t, h.ID, other.ID)
}

func TestHotSpot_ActivateCallsClosure(t *testing.T) {
	var gotAction string
	h := New(Link, Region{})
	h.SetActivator(func(action string) error {
		gotAction = action
		return nil
	})

	err := h.Activate("open")

	assert.NoError(t, err)
	assert.Equal(t, "open", gotAction)
}

func TestHotSpot_ActivateWithoutClosureIsNoop(t *testing.T) {
	h := New(Color, Region{})
	assert.NoError(t, h.Activate("copy"))
}

func TestHotSpot_ActivatePropagatesError(t *testing.T) {
	boom := errors.New("boom")
	h := New(File, Region{})
	h.SetActivator(func(string) error { return boom })

	assert.ErrorIs(t, h.Activate("open-editor"), boom)
}

func TestType_String(t *testing.T) {
	cases := map[Type]string{
		Link:         "Link",
		EmailAddress: "EmailAddress",
		File:         "File",
		EscapedUrl:   "EscapedUrl",
		Color:        "Color",
		Marker:       "Marker",
		NotSpecified: "NotSpecified",
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.String())
	}
}
