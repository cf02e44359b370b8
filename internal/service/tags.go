package service

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/tagdeck/internal/domain"
	"github.com/mmcdole/tagdeck/internal/render"
)

// maxSuggestDistance bounds the edit distance of a "did you mean" suggestion
const maxSuggestDistance = 3

// ParseEnabledTags resolves a comma separated list of tag names against the
// tags the server allows. Unknown names and names the server does not
// support are logged and skipped. Repeated names are kept.
func ParseEnabledTags(logger *slog.Logger, listName, csv string, allowed domain.TagSet) domain.TagSet {
	if logger == nil {
		logger = slog.Default()
	}

	var set domain.TagSet
	for _, token := range strings.Split(csv, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		kind := domain.ParseTagKind(token)
		if kind == domain.TagUnknown {
			if suggestion := suggestTag(token); suggestion != "" {
				logger.Warn("unknown tag", "list", listName, "tag", token, "suggestion", suggestion)
			} else {
				logger.Warn("unknown tag", "list", listName, "tag", token)
			}
			continue
		}
		if !allowed.Contains(kind) {
			logger.Debug("disabling tag", "list", listName, "tag", kind.String())
			continue
		}
		if !set.Append(kind) {
			logger.Warn("tag list full", "list", listName, "tag", kind.String(), "max", domain.MaxTagSetLen)
		}
	}

	logger.Info(fmt.Sprintf("Enabled %s: %s", listName, set), "list", listName, "count", set.Len())
	return set
}

// suggestTag returns the known tag name closest to token, or ""
func suggestTag(token string) string {
	names := domain.TagNames()

	if ranks := fuzzy.RankFindFold(token, names); len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDist := "", maxSuggestDistance+1
	lower := strings.ToLower(token)
	for _, name := range names {
		if d := fuzzy.LevenshteinDistance(lower, strings.ToLower(name)); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// TagConfig is the active tag configuration.
// It is replaced as a whole on reconfiguration and never modified in place.
type TagConfig struct {
	Allowed    domain.TagSet // Tags the server declared
	Columns    domain.TagSet // Tags rendered in listings
	Search     domain.TagSet // Tags searched by the filter
	ServerTags bool          // false if the server reports no tags at all
}

// RenderColumns returns the render selection for listings
func (c *TagConfig) RenderColumns() render.Columns {
	return render.Columns{Tags: c.Columns, ServerTags: c.ServerTags}
}

// Interesting returns the union of column and search tags, in order
func (c *TagConfig) Interesting() domain.TagSet {
	return domain.NewTagSet(append(c.Columns.Kinds(), c.Search.Kinds()...)...)
}

// TagService owns the tag configuration and negotiates it with the server
type TagService struct {
	negotiator domain.TagNegotiator
	logger     *slog.Logger

	current atomic.Pointer[TagConfig]
}

// NewTagService creates a tag service. negotiator may be nil when there is
// no server session.
func NewTagService(negotiator domain.TagNegotiator, logger *slog.Logger) *TagService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &TagService{negotiator: negotiator, logger: logger}
	s.current.Store(&TagConfig{
		Allowed:    domain.AllTags(),
		Columns:    domain.NewTagSet(domain.TagTitle),
		ServerTags: true,
	})
	return s
}

// Current returns the active configuration
func (s *TagService) Current() *TagConfig {
	return s.current.Load()
}

// Configure builds a new configuration from the user's tag lists, publishes
// it and tells the server which tags to report. Without any column or
// search tags the server reports all of its tags.
func (s *TagService) Configure(allowed domain.TagSet, serverTags bool, columns, search string) (*TagConfig, error) {
	cfg := &TagConfig{
		Allowed:    allowed,
		Columns:    ParseEnabledTags(s.logger, "columns", columns, allowed),
		Search:     ParseEnabledTags(s.logger, "search tags", search, allowed),
		ServerTags: serverTags,
	}
	s.current.Store(cfg)

	if err := s.negotiate(cfg); err != nil {
		return cfg, fmt.Errorf("failed to negotiate tags: %w", err)
	}
	return cfg, nil
}

func (s *TagService) negotiate(cfg *TagConfig) error {
	if s.negotiator == nil {
		return nil
	}
	if !cfg.ServerTags {
		s.logger.Debug("disabling all server tags")
		return s.negotiator.DisableAllTags()
	}
	interesting := cfg.Interesting()
	if interesting.Len() == 0 {
		s.logger.Debug("enabling all server tags")
		return s.negotiator.EnableAllTags()
	}
	s.logger.Debug("setting interesting server tags", "tags", interesting.String())
	return s.negotiator.EnableTags(interesting)
}
