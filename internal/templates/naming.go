package templates

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Title turns a project name into a display title: "my-diary" becomes
// "My Diary". Names without separators are only capitalized.
func Title(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' '
	})
	if len(words) == 0 {
		return name
	}
	return cases.Title(language.English).String(strings.Join(words, " "))
}
