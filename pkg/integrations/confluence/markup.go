package confluence

import (
	"regexp"
	"strings"
)

// Confluence returns page bodies in storage format (XHTML with ac: macros),
// while excerpts are extracted from {excerpt} wiki markup.
var (
	storageExcerpt   = regexp.MustCompile(`(?s)<ac:(?:structured-)?macro\b[^>]*\bac:name="excerpt"[^>]*>.*?</ac:(?:structured-)?macro>`)
	storageHidden    = regexp.MustCompile(`(?s)<ac:parameter\b[^>]*\bac:name="hidden"[^>]*>\s*true\s*</ac:parameter>`)
	storageBody      = regexp.MustCompile(`(?s)<ac:rich-text-body>(.*?)</ac:rich-text-body>`)
	storageParagraph = regexp.MustCompile(`</?p\b[^>]*>`)
)

// excerptMarkup rewrites the excerpt macros of a storage-format body into
// {excerpt} markup. Everything else is left as is, so bodies that already
// use wiki markup pass through unchanged.
func excerptMarkup(storage string) string {
	return storageExcerpt.ReplaceAllStringFunc(storage, func(macro string) string {
		body := storageBody.FindStringSubmatch(macro)
		if body == nil {
			return macro
		}
		open := "{excerpt}"
		if storageHidden.MatchString(macro) {
			open = "{excerpt:hidden=true}"
		}
		text := strings.TrimSpace(storageParagraph.ReplaceAllString(body[1], "\n"))
		return open + text + "{excerpt}"
	})
}
