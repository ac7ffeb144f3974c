package locale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestNew(t *testing.T) {
	tests := []struct {
		tag      string
		wantBase language.Tag
		saturday string
	}{
		{tag: "", wantBase: language.English, saturday: "Sat"},
		{tag: "en-US", wantBase: language.English, saturday: "Sat"},
		{tag: "ko-KR", wantBase: language.Korean, saturday: "토"},
		{tag: "es-MX", wantBase: language.Spanish, saturday: "sáb"},
		{tag: "ja", wantBase: language.Japanese, saturday: "土"},
		{tag: "xx-invalid-!!", wantBase: language.English, saturday: "Sat"},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			n := New(tt.tag)
			assert.Equal(t, tt.wantBase, n.Tag())
			assert.Equal(t, tt.saturday, n.ShortWeekday(time.Saturday))
		})
	}
}

func TestShortWeekdayOutOfRange(t *testing.T) {
	assert.Empty(t, New("en").ShortWeekday(time.Weekday(9)))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("ko-KR"))
	assert.False(t, Valid("not a tag"))
}

func TestSupported(t *testing.T) {
	assert.Contains(t, Supported(), "ko")
	assert.Equal(t, "en", Supported()[0])
}
