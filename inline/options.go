package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/marquee-cli/marquee/catalog"
	"github.com/marquee-cli/marquee/internal/cache"
	"github.com/samber/mo"
)

// Target is a single movie or series, written as kind:id.
type Target struct {
	Kind catalog.Kind
	ID   int
}

// ParseTarget parses "movie:550" or "tv:1399".
func ParseTarget(s string) (Target, error) {
	kind, id, ok := strings.Cut(s, ":")
	if !ok {
		return Target{}, fmt.Errorf("invalid target %q, expected kind:id", s)
	}

	k, err := catalog.ParseKind(kind)
	if err != nil {
		return Target{}, err
	}

	n, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil || n <= 0 {
		return Target{}, fmt.Errorf("invalid id %q: %w", id, catalog.ErrInvalidID)
	}

	return Target{Kind: k, ID: n}, nil
}

type Options struct {
	Out     io.Writer
	Queries *cache.Queries

	// Resource and Details are mutually exclusive.
	Resource mo.Option[catalog.Resource]
	Details  mo.Option[Target]

	Filters catalog.Filters
	// Pages is how many pages of Resource to load.
	Pages int

	Videos bool
	Cast   bool

	ImageBaseURL string
}
