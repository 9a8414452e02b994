package sources

import (
	"fmt"

	"github.com/feral-file/ff-opportunities/internal/adapter"
	"github.com/feral-file/ff-opportunities/internal/cache"
	"github.com/feral-file/ff-opportunities/internal/config"
	"github.com/feral-file/ff-opportunities/internal/domain"
	"github.com/feral-file/ff-opportunities/internal/providers/vendors/defillama"
	"github.com/feral-file/ff-opportunities/internal/providers/vendors/galxe"
	"github.com/feral-file/ff-opportunities/internal/providers/vendors/layer3"
	"github.com/feral-file/ff-opportunities/internal/ratelimit"
	"github.com/feral-file/ff-opportunities/internal/registry"
)

// Deps are the collaborators shared by every source adapter
type Deps struct {
	HTTP    adapter.HTTPClient
	Proxy   ratelimit.Proxy
	JSON    adapter.JSON
	FS      adapter.FileSystem
	Clock   adapter.Clock
	// Backend returns the response cache backend of one source
	Backend func(def Definition) cache.Backend[Batch]
}

// NewAdapters builds the adapters of the given sources, all registered sources when ids is empty.
// A source whose feed is not configured is skipped.
func NewAdapters(cfg config.SourcesConfig, ids []string, deps Deps) ([]Adapter, error) {
	defs := Definitions()
	if len(ids) > 0 {
		defs = defs[:0:0]
		for _, id := range ids {
			def, ok := Lookup(domain.SourceID(id))
			if !ok {
				return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSource, id)
			}
			defs = append(defs, def)
		}
	}

	adapters := make([]Adapter, 0, len(defs))
	for _, def := range defs {
		feed := newFeed(cfg, def.ID, deps)
		if feed == nil {
			continue
		}
		adapters = append(adapters, NewAdapter(def, feed, NewTier(def, deps.Backend(def), deps.Clock), deps.Clock, cfg.PageDelay))
	}
	return adapters, nil
}

func newFeed(cfg config.SourcesConfig, id domain.SourceID, deps Deps) Feed {
	switch id {
	case domain.SourceDefiLlama:
		if cfg.DefiLlamaURL == "" {
			return nil
		}
		return NewDefiLlamaFeed(defillama.NewClient(deps.HTTP, deps.Proxy, cfg.DefiLlamaURL, deps.JSON), cfg.DefiLlamaMinTVL)
	case domain.SourceGalxe:
		if cfg.GalxeURL == "" {
			return nil
		}
		return NewGalxeFeed(galxe.NewClient(deps.HTTP, deps.Proxy, cfg.GalxeURL, deps.JSON))
	case domain.SourceLayer3:
		if cfg.Layer3URL == "" {
			return nil
		}
		return NewLayer3Feed(layer3.NewClient(deps.HTTP, deps.Proxy, cfg.Layer3URL, cfg.Layer3APIKey, deps.JSON))
	case domain.SourceCurated:
		if cfg.CuratedPath == "" {
			return nil
		}
		return NewCuratedFeed(registry.NewCuratedRegistry(deps.FS, deps.JSON, cfg.CuratedPath))
	}
	return nil
}
