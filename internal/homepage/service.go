package homepage

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/luannguen/vrc-cms/internal/document"
	"github.com/luannguen/vrc-cms/internal/domain"
	"github.com/luannguen/vrc-cms/internal/i18n"
	"github.com/luannguen/vrc-cms/internal/logging"
	"github.com/luannguen/vrc-cms/pkg/interfaces"
)

const (
	defaultSectionTimeout = 3 * time.Second
	defaultAutoLimit      = 10
)

// Service assembles the homepage view: each configured section resolved
// against its collection with publication, scheduling and locale rules
// applied. Sections resolve concurrently and fail independently.
type Service struct {
	repo           document.Repository
	resolver       *i18n.Resolver
	logger         interfaces.Logger
	sectionTimeout time.Duration
}

// Option configures the service at construction time.
type Option func(*Service)

// WithSectionTimeout bounds how long one section may take before it is
// reported as failed. One slow section must not stall the whole view.
func WithSectionTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.sectionTimeout = timeout
		}
	}
}

// WithLoggerProvider wires module-scoped logging into the service.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(s *Service) {
		s.logger = logging.HomepageLogger(provider)
	}
}

// NewService constructs the aggregator over the supplied repository and
// locale resolver.
func NewService(repo document.Repository, resolver *i18n.Resolver, opts ...Option) *Service {
	s := &Service{
		repo:           repo,
		resolver:       resolver,
		logger:         logging.NoOp(),
		sectionTimeout: defaultSectionTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// sectionSpec binds a settings section to the collection it resolves
// against and whether children carry a scheduling window.
type sectionSpec struct {
	name       string
	collection string
	settings   *SectionSettings
	windowed   bool
}

// BuildView fetches the homepage settings and resolves every enabled
// section for the requested locale. The settings read is the only fatal
// path; section failures are isolated into View.Errors.
func (s *Service) BuildView(ctx context.Context, locale string, now time.Time) (*View, error) {
	locale = s.resolver.Config().Normalize(locale)

	settingsDoc, err := s.repo.FindGlobal(ctx, SettingsSlug)
	if err != nil {
		return nil, err
	}
	settings := ParseSettings(settingsDoc)

	specs := []sectionSpec{
		{name: SectionBanners, collection: "banners", settings: settings.Banners, windowed: true},
		{name: SectionFeatured, collection: "products", settings: settings.Featured},
		{name: SectionPosts, collection: "posts", settings: settings.Posts},
	}

	results := make([][]map[string]any, len(specs))
	failures := make([]error, len(specs))

	// Plain errgroup without a shared cancel: one section failing must not
	// cancel its siblings. Failures land in the per-section slot instead.
	var group errgroup.Group
	for i, spec := range specs {
		if spec.settings == nil || !spec.settings.Enabled {
			continue
		}
		group.Go(func() error {
			sectionCtx, cancel := context.WithTimeout(ctx, s.sectionTimeout)
			defer cancel()

			docs, err := s.resolveSection(sectionCtx, spec, locale, now)
			if err != nil {
				failures[i] = err
				return nil
			}
			results[i] = docs
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	view := &View{}
	for i, spec := range specs {
		if spec.settings == nil || !spec.settings.Enabled {
			continue
		}
		if failures[i] != nil {
			s.logger.Error("homepage.section.failed", "section", spec.name, "error", failures[i])
			if view.Errors == nil {
				view.Errors = map[string]string{}
			}
			view.Errors[spec.name] = "section unavailable"
			continue
		}
		docs := results[i]
		if docs == nil {
			docs = []map[string]any{}
		}
		switch spec.name {
		case SectionBanners:
			view.Banners = &docs
		case SectionFeatured:
			view.FeaturedProducts = &docs
		case SectionPosts:
			view.Posts = &docs
		}
	}
	return view, nil
}

func (s *Service) resolveSection(ctx context.Context, spec sectionSpec, locale string, now time.Time) ([]map[string]any, error) {
	filter := document.Filter{Status: domain.StatusPublished}
	if spec.windowed {
		filter.ActiveAt = &now
	}

	opts := document.FindOptions{}
	switch spec.settings.Mode {
	case ModeAuto:
		limit := spec.settings.Limit
		if limit <= 0 {
			limit = defaultAutoLimit
		}
		opts.Limit = limit
		opts.Sort = &document.Sort{Field: "createdAt", Desc: true}
	default:
		if len(spec.settings.References) == 0 {
			return []map[string]any{}, nil
		}
		filter.IDs = spec.settings.References
		opts.Sort = &document.Sort{Field: "sortOrder"}
	}

	page, err := s.repo.Find(ctx, spec.collection, filter, opts)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(page.Docs))
	for _, doc := range page.Docs {
		flat := s.resolver.ResolveDocument(doc, locale)
		flat["id"] = doc.ID.String()
		out = append(out, flat)
	}
	return out, nil
}

// ResolveGlobal serves any singleton global (e.g. company-info) flattened
// for the requested locale, sharing the homepage resolution path.
func (s *Service) ResolveGlobal(ctx context.Context, slug, locale string) (map[string]any, error) {
	locale = s.resolver.Config().Normalize(locale)
	doc, err := s.repo.FindGlobal(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.resolver.ResolveDocument(doc, locale), nil
}
