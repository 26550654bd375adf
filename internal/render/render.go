// Package render turns loaded site content into HTML fragments and pages.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/jajnabi/folio/internal/author"
	"github.com/jajnabi/folio/internal/citation"
	"github.com/jajnabi/folio/internal/content"
	"github.com/jajnabi/folio/internal/experience"
	"github.com/jajnabi/folio/internal/profile"
	"github.com/jajnabi/folio/internal/publist"
	"github.com/jajnabi/folio/internal/reference"
)

// compiled templates are parsed at init time to fail fast on template errors.
var (
	sections *template.Template
	page     *template.Template
)

func init() {
	funcs := template.FuncMap{"icon": icon}
	sections = template.Must(template.New("sections").Funcs(funcs).Parse(sectionTemplates))
	page = template.Must(template.New("page").Parse(pageTemplate))
}

// DefaultPhoto is the profile image path used when none is configured.
const DefaultPhoto = "assets/profile.jpg"

// Renderer renders page sections for one owner.
type Renderer struct {
	Owner *author.Matcher
	Cites *experience.Renderer
	Photo string
}

// New returns a renderer that highlights the owner's name and resolves
// experience citations through exp.
func New(owner *author.Matcher, exp *experience.Renderer) *Renderer {
	return &Renderer{Owner: owner, Cites: exp, Photo: DefaultPhoto}
}

type profileData struct {
	profile.Profile
	Photo string
	Links []profile.Link
}

// Profile renders the profile header. A nil profile renders nothing.
func (r *Renderer) Profile(p *profile.Profile) (template.HTML, error) {
	if p == nil {
		return "", nil
	}
	photo := r.Photo
	if photo == "" {
		photo = DefaultPhoto
	}
	return execute("profile", profileData{Profile: *p, Photo: photo, Links: p.OrderedLinks()})
}

// About renders the about text as paragraphs.
func (r *Renderer) About(text string) (template.HTML, error) {
	paras := profile.Paragraphs(text)
	if len(paras) == 0 {
		return "", nil
	}
	return execute("about", paras)
}

// Interests renders the research interests list.
func (r *Renderer) Interests(in profile.Interests) (template.HTML, error) {
	if len(in) == 0 {
		return "", nil
	}
	return execute("interests", in)
}

type entryData struct {
	experience.Entry
	Points []template.HTML
}

// Experience renders experience blocks with inline citations resolved.
func (r *Renderer) Experience(entries []experience.Entry) (template.HTML, error) {
	if len(entries) == 0 {
		return "", nil
	}
	exp := r.Cites
	if exp == nil {
		exp = experience.NewRenderer(nil)
	}
	data := make([]entryData, len(entries))
	for i, e := range entries {
		data[i].Entry = e
		for _, p := range e.Points {
			data[i].Points = append(data[i].Points, exp.RenderPoint(p))
		}
	}
	return execute("experience", data)
}

type filterButton struct {
	Type   publist.FilterType
	Label  string
	Active bool
}

type pubItem struct {
	reference.Publication
	Authors     template.HTML
	FirstAuthor bool
	Journal     string
	Label       string
}

type publicationsData struct {
	Filters   []filterButton
	Order     publist.SortOrder
	SortLabel string
	Items     []pubItem
}

// Publications renders the controls and list for one derived view.
func (r *Renderer) Publications(v publist.View) (template.HTML, error) {
	data := publicationsData{
		Order:     v.State.Order,
		SortLabel: v.State.Order.Label(),
	}
	for _, f := range publist.FilterTypes {
		data.Filters = append(data.Filters, filterButton{Type: f, Label: f.Label(), Active: f == v.State.Filter})
	}
	for _, p := range v.Publications {
		data.Items = append(data.Items, pubItem{
			Publication: p,
			Authors:     r.authors(p.Authors),
			FirstAuthor: r.Owner != nil && r.Owner.IsFirstAuthor(p.Authors),
			Journal:     citation.InlineVenue(p),
			Label:       citation.FormatShort(p),
		})
	}
	return execute("publications", data)
}

// authors escapes the author string and wraps owner mentions in <strong>.
func (r *Renderer) authors(s string) template.HTML {
	if r.Owner == nil {
		return template.HTML(template.HTMLEscapeString(s))
	}
	var b strings.Builder
	for _, sp := range r.Owner.Spans(s) {
		text := template.HTMLEscapeString(sp.Text)
		if sp.Match {
			b.WriteString("<strong>")
			b.WriteString(text)
			b.WriteString("</strong>")
			continue
		}
		b.WriteString(text)
	}
	return template.HTML(b.String())
}

// Section renders one named section of the site. Sections that failed to
// load render empty.
func (r *Renderer) Section(site *content.Site, sec content.Section, v publist.View) (template.HTML, error) {
	if site == nil || !site.OK(sec) {
		return "", nil
	}
	switch sec {
	case content.SectionProfile:
		return r.Profile(site.Profile)
	case content.SectionAbout:
		return r.About(site.About)
	case content.SectionInterests:
		return r.Interests(site.Interests)
	case content.SectionExperience:
		return r.Experience(site.Experience)
	case content.SectionPublications:
		return r.Publications(v)
	}
	return "", fmt.Errorf("unknown section %q", sec)
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := sections.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
