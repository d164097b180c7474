package render

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed templates/*.tpl
var templateFS embed.FS

func defaultTemplates() (fs.FS, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("render: embedded templates: %w", err)
	}
	return sub, nil
}
