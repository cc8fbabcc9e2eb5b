package gen

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// acronyms are written in upper case in Go identifiers.
var acronyms = map[string]string{
	"Api":  "API",
	"Html": "HTML",
	"Http": "HTTP",
	"Id":   "ID",
	"Ip":   "IP",
	"Json": "JSON",
	"Sql":  "SQL",
	"Uid":  "UID",
	"Uri":  "URI",
	"Url":  "URL",
	"Uuid": "UUID",
	"Xml":  "XML",
}

// goName returns the exported Go identifier of an internal or external
// name, e.g. "author_id" becomes "AuthorID".
func goName(name string) string {
	words := strings.Split(strcase.ToSnake(name), "_")
	var b strings.Builder
	for _, w := range words {
		if w == "" {
			continue
		}
		w = strings.ToUpper(w[:1]) + w[1:]
		if a, ok := acronyms[w]; ok {
			w = a
		}
		b.WriteString(w)
	}
	return b.String()
}

// fileName returns the generated file name of an entity.
func fileName(e *Entity) string {
	return strcase.ToSnake(e.Name) + ".go"
}
