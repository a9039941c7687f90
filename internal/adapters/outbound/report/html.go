package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/covscore/covscore/internal/domain"
)

//go:embed page.html.tmpl
var pageTemplate string

var page = template.Must(template.New("page").Parse(pageTemplate))

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

type pageSection struct {
	Title string
	Color template.CSS
	Body  template.HTML
}

type pageData struct {
	Title    string
	Sections []pageSection
}

// RenderHTML renders analyses as a standalone HTML page. Each report gets a
// header bar in its rating color followed by the Markdown section converted
// to HTML.
func RenderHTML(analyses []*domain.Analysis, lowest int) (string, error) {
	data := pageData{Title: "Coverage report"}
	for _, a := range analyses {
		var section strings.Builder
		writeSection(&section, a, lowest)

		var body bytes.Buffer
		if err := md.Convert([]byte(section.String()), &body); err != nil {
			return "", fmt.Errorf("converting %s: %w", a.Source, err)
		}
		data.Sections = append(data.Sections, pageSection{
			Title: sourceName(a.Source),
			Color: template.CSS(a.Score.RatingColor),
			// goldmark escapes raw HTML unless WithUnsafe is set.
			Body: template.HTML(body.String()),
		})
	}

	var out bytes.Buffer
	if err := page.Execute(&out, data); err != nil {
		return "", fmt.Errorf("rendering page: %w", err)
	}
	return out.String(), nil
}
