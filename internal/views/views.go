// Package views contém os templates HTML embutidos no binário.
package views

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Parse carrega todos os templates com as funções auxiliares
func Parse() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(Funcs()).ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// Funcs retorna as funções disponíveis nos templates
func Funcs() template.FuncMap {
	return template.FuncMap{
		// params monta o mapa de interpolação do i18n: params "Name" .Name
		"params": func(pairs ...interface{}) (map[string]interface{}, error) {
			if len(pairs)%2 != 0 {
				return nil, fmt.Errorf("params: odd number of arguments")
			}
			out := make(map[string]interface{}, len(pairs)/2)
			for i := 0; i < len(pairs); i += 2 {
				key, ok := pairs[i].(string)
				if !ok {
					return nil, fmt.Errorf("params: key %v is not a string", pairs[i])
				}
				out[key] = pairs[i+1]
			}
			return out, nil
		},
		"categoryKey": func(c fmt.Stringer) string {
			return "category." + c.String()
		},
		"pluralKey": func(c interface{ Plural() string }) string {
			return "category." + c.Plural()
		},
	}
}
