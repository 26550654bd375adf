package render

import "html/template"

// icons are inline SVGs keyed by profile link name.
var icons = map[string]template.HTML{
	"Email":          `<svg viewBox="0 0 24 24"><path d="M4 6h16v12H4z"/><path d="M4 6l8 6 8-6"/></svg>`,
	"Google Scholar": `<svg viewBox="0 0 24 24"><path d="M12 3l9 5-9 5-9-5z"/><path d="M5 13v4c0 1.5 3 3 7 3s7-1.5 7-3v-4"/></svg>`,
	"ORCID":          `<svg viewBox="0 0 24 24"><circle cx="12" cy="12" r="9"/><path d="M9 8v8M13 8h2a3 3 0 010 6h-2z"/></svg>`,
	"LinkedIn":       `<svg viewBox="0 0 24 24"><path d="M6 9v9M6 6v.01M10 9v9M10 13c0-4 6-4 6 0v5"/></svg>`,
	"BlueSky":        `<svg viewBox="0 0 24 24"><path d="M12 12c-2-4-6-6-8-7 0 7 4 10 8 12 4-2 8-5 8-12-2 1-6 3-8 7z"/></svg>`,
}

func icon(name string) template.HTML {
	if svg, ok := icons[name]; ok {
		return svg
	}
	return template.HTML(template.HTMLEscapeString(name))
}
