package main

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jajnabi/folio/internal/author"
	"github.com/jajnabi/folio/internal/citation"
	"github.com/jajnabi/folio/internal/config"
	"github.com/jajnabi/folio/internal/content"
	"github.com/jajnabi/folio/internal/experience"
	"github.com/jajnabi/folio/internal/render"
	"github.com/jajnabi/folio/internal/server"
)

// loadSite fetches every section of the configured site.
func loadSite(ctx context.Context, cfg *config.Config) *content.Site {
	return content.Load(ctx, cfg.Fetcher(), cfg.Content.Paths, logger)
}

// newRenderer builds the page renderer for a loaded site and logs citation
// problems an author would want to fix.
func newRenderer(cfg *config.Config, site *content.Site) (*render.Renderer, error) {
	matcher, err := author.NewMatcher(cfg.Owner)
	if err != nil {
		return nil, err
	}
	grammar, err := citation.ParseGrammar(cfg.Citations.Grammar)
	if err != nil {
		return nil, err
	}
	policy, err := experience.ParsePolicy(cfg.Citations.Unresolved)
	if err != nil {
		return nil, err
	}

	ix := citation.BuildIndex(site.Publications)
	for _, c := range ix.Collisions() {
		logger.Warn("citation key collision",
			zap.String("key", string(c.Key)),
			zap.Int("shadowed", c.Shadowed))
	}

	if grammar != citation.GrammarProse {
		for _, k := range ix.Keys() {
			if _, ok := keyMarker(k); !ok {
				logger.Warn("citation key cannot be written as a marker",
					zap.String("key", string(k)))
			}
		}
	}

	exp := &experience.Renderer{Index: ix, Grammar: grammar, Unresolved: policy}
	if site.OK(content.SectionExperience) && site.OK(content.SectionPublications) {
		for _, e := range site.Experience {
			if markers := exp.UnresolvedMarkers(e); len(markers) > 0 {
				logger.Warn("unresolved citations",
					zap.String("role", e.Role),
					zap.Strings("markers", markers))
			}
		}
	}

	r := render.New(matcher, exp)
	if cfg.Photo != "" {
		r.Photo = cfg.Photo
	}
	return r, nil
}

// loadSnapshot loads the site and prepares it for serving.
func loadSnapshot(ctx context.Context, cfg *config.Config) (*server.Snapshot, error) {
	site := loadSite(ctx, cfg)
	r, err := newRenderer(cfg, site)
	if err != nil {
		return nil, err
	}
	return &server.Snapshot{Site: site, Renderer: r, Title: cfg.Title}, nil
}

// assetsDir is the directory served under /assets.
func assetsDir(cfg *config.Config) string {
	return filepath.Join(cfg.Content.Root, "assets")
}
