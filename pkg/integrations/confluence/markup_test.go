package confluence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcerptMarkup(t *testing.T) {
	tests := []struct {
		name    string
		storage string
		want    string
	}{
		{
			name:    "structured macro",
			storage: `<p>Intro</p><ac:structured-macro ac:name="excerpt" ac:schema-version="1" ac:macro-id="a1"><ac:rich-text-body><p>Adds <a href="https://git-scm.com/">Git</a> support.</p></ac:rich-text-body></ac:structured-macro><p>More</p>`,
			want:    `<p>Intro</p>{excerpt}Adds <a href="https://git-scm.com/">Git</a> support.{excerpt}<p>More</p>`,
		},
		{
			name:    "hidden",
			storage: `<ac:structured-macro ac:name="excerpt"><ac:parameter ac:name="hidden">true</ac:parameter><ac:rich-text-body><p>Secret</p></ac:rich-text-body></ac:structured-macro>`,
			want:    `{excerpt:hidden=true}Secret{excerpt}`,
		},
		{
			name:    "legacy macro element",
			storage: `<ac:macro ac:name="excerpt"><ac:rich-text-body><p>Old</p></ac:rich-text-body></ac:macro>`,
			want:    `{excerpt}Old{excerpt}`,
		},
		{
			name:    "other macros untouched",
			storage: `<ac:structured-macro ac:name="info"><ac:rich-text-body><p>Note</p></ac:rich-text-body></ac:structured-macro>`,
			want:    `<ac:structured-macro ac:name="info"><ac:rich-text-body><p>Note</p></ac:rich-text-body></ac:structured-macro>`,
		},
		{
			name:    "wiki markup passes through",
			storage: "{excerpt}Git{excerpt}",
			want:    "{excerpt}Git{excerpt}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, excerptMarkup(tt.storage))
		})
	}
}
