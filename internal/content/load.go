package content

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jajnabi/folio/internal/experience"
	"github.com/jajnabi/folio/internal/profile"
	"github.com/jajnabi/folio/internal/reference"
)

// Section names one independently loaded part of the page.
type Section string

const (
	SectionProfile      Section = "profile"
	SectionAbout        Section = "about"
	SectionInterests    Section = "interests"
	SectionExperience   Section = "experience"
	SectionPublications Section = "publications"
)

// Sections lists every section in page order.
var Sections = []Section{SectionProfile, SectionAbout, SectionInterests, SectionExperience, SectionPublications}

// Paths locates each section's record relative to the fetcher root.
type Paths struct {
	Profile      string `yaml:"profile"`
	About        string `yaml:"about"`
	Interests    string `yaml:"interests"`
	Experience   string `yaml:"experience"`
	Publications string `yaml:"publications"`
}

// DefaultPaths returns the conventional record layout.
func DefaultPaths() Paths {
	return Paths{
		Profile:      "data/profile.json",
		About:        "content/about.md",
		Interests:    "data/interests.json",
		Experience:   "data/experience.json",
		Publications: "data/publications.json",
	}
}

// For returns the path of a section's record.
func (p Paths) For(s Section) string {
	switch s {
	case SectionProfile:
		return p.Profile
	case SectionAbout:
		return p.About
	case SectionInterests:
		return p.Interests
	case SectionExperience:
		return p.Experience
	case SectionPublications:
		return p.Publications
	}
	return ""
}

// Site is the loaded content. A section that failed to load is left at its
// zero value and its error recorded in Errors.
type Site struct {
	Profile      *profile.Profile
	About        string
	Interests    profile.Interests
	Experience   []experience.Entry
	Publications []reference.Publication

	Errors map[Section]error
}

// OK reports whether a section loaded.
func (s *Site) OK(sec Section) bool {
	return s.Errors[sec] == nil
}

// Load fetches every section concurrently and waits for all of them. A
// failing section is logged and recorded; it never prevents the others
// from loading.
func Load(ctx context.Context, f Fetcher, paths Paths, logger *zap.Logger) *Site {
	if logger == nil {
		logger = zap.NewNop()
	}

	site := &Site{Errors: make(map[Section]error)}
	var mu sync.Mutex
	var g errgroup.Group

	for _, sec := range Sections {
		g.Go(func() error {
			p := paths.For(sec)
			if err := loadSection(ctx, f, p, sec, site); err != nil {
				logger.Warn("section failed to load",
					zap.String("section", string(sec)),
					zap.String("path", p),
					zap.Error(err))
				mu.Lock()
				site.Errors[sec] = err
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	logger.Debug("content loaded",
		zap.Int("publications", len(site.Publications)),
		zap.Int("experience", len(site.Experience)),
		zap.Int("failed", len(site.Errors)))
	return site
}

// loadSection fetches and decodes one record into its own field of site.
func loadSection(ctx context.Context, f Fetcher, path string, sec Section, site *Site) error {
	if path == "" {
		return fmt.Errorf("no path configured for %s", sec)
	}
	data, err := f.Fetch(ctx, path)
	if err != nil {
		return err
	}

	switch sec {
	case SectionProfile:
		var p profile.Profile
		if err := decode(data, path, &p); err != nil {
			return err
		}
		site.Profile = &p
	case SectionAbout:
		site.About = string(data)
	case SectionInterests:
		var in profile.Interests
		if err := decode(data, path, &in); err != nil {
			return err
		}
		site.Interests = in
	case SectionExperience:
		var entries []experience.Entry
		if err := decode(data, path, &entries); err != nil {
			return err
		}
		site.Experience = entries
	case SectionPublications:
		var pubs []reference.Publication
		if err := decode(data, path, &pubs); err != nil {
			return err
		}
		site.Publications = pubs
	}
	return nil
}

func decode(data []byte, path string, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
