package render

import (
	"bytes"
	"html/template"

	"github.com/jajnabi/folio/internal/content"
	"github.com/jajnabi/folio/internal/publist"
)

// PageOptions configures full page generation.
type PageOptions struct {
	Title string
	// Static embeds every filter and sort view so the controls work
	// without a server.
	Static bool
}

var sectionNames = map[content.Section]string{
	content.SectionProfile:      "Profile",
	content.SectionAbout:        "About",
	content.SectionInterests:    "Interests",
	content.SectionExperience:   "Experience",
	content.SectionPublications: "Publications",
}

type pageSection struct {
	ID   content.Section
	Name string
	HTML template.HTML
}

type pageView struct {
	ID   string
	HTML template.HTML
}

type pageData struct {
	Title    string
	Sections []pageSection
	Views    []pageView
	Static   bool
	State    publist.State
}

// ViewID names a publications view by its filter and sort order.
func ViewID(s publist.State) string {
	return string(s.Filter) + "-" + string(s.Order)
}

// Page renders the full document. v is the publications view shown
// initially. Sections that render empty are omitted.
func (r *Renderer) Page(site *content.Site, v publist.View, opts PageOptions) (string, error) {
	data := pageData{Title: opts.Title, Static: opts.Static, State: v.State}
	if data.Title == "" && site != nil && site.Profile != nil {
		data.Title = site.Profile.Name
	}
	for _, sec := range content.Sections {
		html, err := r.Section(site, sec, v)
		if err != nil {
			return "", err
		}
		if html == "" {
			continue
		}
		data.Sections = append(data.Sections, pageSection{ID: sec, Name: sectionNames[sec], HTML: html})
	}

	if opts.Static && site != nil && site.OK(content.SectionPublications) {
		views, err := r.allViews(site)
		if err != nil {
			return "", err
		}
		data.Views = views
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// allViews renders every filter and sort combination.
func (r *Renderer) allViews(site *content.Site) ([]pageView, error) {
	var out []pageView
	for _, f := range publist.FilterTypes {
		for _, o := range []publist.SortOrder{publist.Desc, publist.Asc} {
			st := publist.State{Filter: f, Order: o}
			html, err := r.Publications(publist.View{
				State:        st,
				Publications: publist.DeriveView(site.Publications, f, o),
			})
			if err != nil {
				return nil, err
			}
			out = append(out, pageView{ID: ViewID(st), HTML: html})
		}
	}
	return out, nil
}
