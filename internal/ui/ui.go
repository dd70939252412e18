package ui

import (
	"embed"
	"html/template"

	"github.com/pudottapommin/ephemeral-messages-service/assets"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var templateFn = template.FuncMap{
	"asset": func(path string) string {
		return assets.Url(path)
	},
}

// indexTemplate renders the SPA shell; everything else happens
// client-side, including encryption.
var indexTemplate = template.Must(
	template.New("index").
		Funcs(templateFn).
		ParseFS(templateFS, "templates/index.gohtml"))
