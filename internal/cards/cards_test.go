package cards

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestErrTextShortMessage(t *testing.T) {
	assert.Equal(t, "Error: boom", errText(errors.New("boom")))
}

func TestErrTextTruncatesLongMessage(t *testing.T) {
	long := strings.Repeat("x", 200)
	got := errText(errors.New(long))

	assert.Equal(t, maxInlineError, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.True(t, strings.HasPrefix(got, "Error: "))
}

func TestErrTextCountsRunesNotBytes(t *testing.T) {
	// 100 multi-byte runes; byte-based truncation would split one.
	long := strings.Repeat("å", 100)
	got := errText(errors.New(long))

	assert.Equal(t, maxInlineError, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got))
}
