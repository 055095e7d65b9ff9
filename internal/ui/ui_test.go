package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDisableColors(t *testing.T) {
	DisableColors()

	assert.False(t, IsTerminal())
	assert.Equal(t, "done", Success("done"), "styles must render plain once colors are off")
	assert.Equal(t, "baby.jpg", Path("baby.jpg"))
}

func TestProgressBar(t *testing.T) {
	DisableColors() // line-oriented rendering

	var buf bytes.Buffer
	bar := NewProgressBar(3, "stamping")
	bar.writer = &buf

	for i := 0; i < 3; i++ {
		bar.Increment()
	}

	out := buf.String()
	assert.Contains(t, out, "stamping: 1/3")
	assert.Contains(t, out, "stamping: 3/3 (100.0%)")
	assert.True(t, strings.HasSuffix(out, "\n"), "completed bar must end its line")
}

func TestProgressBar_ClampsAtTotal(t *testing.T) {
	DisableColors()

	var buf bytes.Buffer
	bar := NewProgressBar(2, "stamping")
	bar.writer = &buf

	for i := 0; i < 5; i++ {
		bar.Increment()
	}

	assert.NotContains(t, buf.String(), "3/2")
}

func TestProgressBar_ZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(0, "stamping")
	bar.writer = &buf

	bar.Increment()

	assert.Empty(t, buf.String())
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "250ms", FormatDuration(250*time.Millisecond))
	assert.Equal(t, "2.5s", FormatDuration(2500*time.Millisecond))
}
