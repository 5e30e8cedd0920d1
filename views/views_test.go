package views

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		text string
		n    int
		want string
	}{
		{name: "short text untouched", text: "校園公告", n: 150, want: "校園公告"},
		{name: "exact length untouched", text: "abc", n: 3, want: "abc"},
		{name: "cuts on runes", text: "高雄科技大學", n: 2, want: "高雄..."},
		{name: "zero length", text: "abc", n: 0, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.text, tt.n))
		})
	}

	long := strings.Repeat("字", 200)
	got := Truncate(long, PreviewLength)
	assert.Equal(t, PreviewLength+3, len([]rune(got)))
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "招生 說明會 開始報名", Preview("<p>招生\n<b>說明會</b>\r開始報名</p>"))

	long := "<div>" + strings.Repeat("a", 300) + "</div>"
	assert.Equal(t, strings.Repeat("a", PreviewLength)+"...", Preview(long))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2025年3月1日", FormatDate(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)))
	// 20:00 UTC is already the next day in Taipei
	assert.Equal(t, "2025年12月2日", FormatDate(time.Date(2025, 12, 1, 20, 0, 0, 0, time.UTC)))
}

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)
	for _, name := range []string{"home.tmpl", "news.tmpl", "news_list.tmpl", "error.tmpl"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}
