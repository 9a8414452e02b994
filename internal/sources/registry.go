package sources

import (
	"cmp"
	"slices"
	"time"

	"github.com/feral-file/ff-opportunities/internal/domain"
)

// Definition is the fixed configuration of one opportunity source
type Definition struct {
	ID domain.SourceID
	// Priority orders sources for dedup; a higher priority wins a dedupe key
	Priority int
	// TrustScore is assigned to every record of the source
	TrustScore int
	// TTL is how long a fetched batch is served from cache
	TTL time.Duration
}

var definitions = map[domain.SourceID]Definition{
	domain.SourceDefiLlama: {ID: domain.SourceDefiLlama, Priority: 1, TrustScore: 70, TTL: domain.SLOW_FEED_TTL},
	domain.SourceGalxe:     {ID: domain.SourceGalxe, Priority: 2, TrustScore: 60, TTL: domain.FAST_FEED_TTL},
	domain.SourceLayer3:    {ID: domain.SourceLayer3, Priority: 3, TrustScore: 65, TTL: domain.FAST_FEED_TTL},
	domain.SourceCurated:   {ID: domain.SourceCurated, Priority: 4, TrustScore: 90, TTL: domain.FAST_FEED_TTL},
}

// Lookup returns the definition of a registered source
func Lookup(id domain.SourceID) (Definition, bool) {
	def, ok := definitions[id]
	return def, ok
}

// Priority returns the dedup priority of a source; unregistered sources rank lowest
func Priority(id domain.SourceID) int {
	return definitions[id].Priority
}

// Definitions returns every registered source in ascending priority
func Definitions() []Definition {
	defs := make([]Definition, 0, len(definitions))
	for _, def := range definitions {
		defs = append(defs, def)
	}
	slices.SortFunc(defs, func(a, b Definition) int {
		return cmp.Compare(a.Priority, b.Priority)
	})
	return defs
}
