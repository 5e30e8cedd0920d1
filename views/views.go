package views

import (
	"embed"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// PreviewLength is the number of characters of news content shown on a card.
const PreviewLength = 150

// taipei has no daylight saving time, so a fixed zone is exact.
var taipei = time.FixedZone("CST", 8*60*60)

var FuncMap = template.FuncMap{
	"truncate":   Truncate,
	"preview":    Preview,
	"formatDate": FormatDate,
	"isoDate":    func(t time.Time) string { return t.In(taipei).Format(time.RFC3339) },
}

// Templates parses every embedded page template.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap).ParseFS(templateFS, "templates/*.tmpl")
}

// Truncate cuts text to at most n characters and appends "..." when it cut anything.
func Truncate(text string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n]) + "..."
}

var htmlTagRegex = regexp.MustCompile("<[^>]*>")

// PlainText strips markup and folds line breaks so CMS content fits on a card.
func PlainText(text string) string {
	clean := htmlTagRegex.ReplaceAllString(text, "")
	clean = strings.ReplaceAll(clean, "\r", " ")
	clean = strings.ReplaceAll(clean, "\n", " ")
	return strings.TrimSpace(clean)
}

// Preview is the card summary: plain text cut to PreviewLength characters.
func Preview(content string) string {
	return Truncate(PlainText(content), PreviewLength)
}

// FormatDate renders t as a long Traditional Chinese date, e.g. 2025年3月1日.
func FormatDate(t time.Time) string {
	local := t.In(taipei)
	return fmt.Sprintf("%d年%d月%d日", local.Year(), int(local.Month()), local.Day())
}
