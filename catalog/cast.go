package catalog

import (
	"context"
	"sort"

	"github.com/marquee-cli/marquee/log"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
)

// DefaultCastLimit is how many billed cast members get a portrait.
const DefaultCastLimit = 8

const castWorkers = 4

type portraitLookup struct {
	index  int
	member CastMember
	image  mo.Result[PersonImage]
}

// JoinCastPortraits looks up a profile image for the first limit cast
// members of item. A failed lookup yields an empty profile path; the join
// itself never fails. Billing order is preserved.
func (c *Client) JoinCastPortraits(ctx context.Context, item MediaItem, limit int) []CastPortrait {
	if item == nil {
		return nil
	}
	if limit <= 0 {
		limit = DefaultCastLimit
	}

	cast := item.Info().Cast()
	if len(cast) > limit {
		cast = cast[:limit]
	}
	if len(cast) == 0 {
		return []CastPortrait{}
	}

	p := pool.NewWithResults[portraitLookup]().WithMaxGoroutines(castWorkers)
	for i, member := range cast {
		i, member := i, member
		p.Go(func() portraitLookup {
			img, err := c.FetchPersonImage(ctx, member.ID)
			if err != nil {
				return portraitLookup{index: i, member: member, image: mo.Err[PersonImage](err)}
			}
			return portraitLookup{index: i, member: member, image: mo.Ok(img)}
		})
	}

	lookups := p.Wait()
	sort.Slice(lookups, func(i, j int) bool { return lookups[i].index < lookups[j].index })

	return lo.Reduce(lookups, func(acc []CastPortrait, l portraitLookup, _ int) []CastPortrait {
		portrait := CastPortrait{ActorID: l.member.ID, Name: l.member.Name, Character: l.member.Character}
		if img, err := l.image.Get(); err != nil {
			log.WithFields(logrus.Fields{"actor": l.member.ID}).Warnf("portrait lookup failed: %v", err)
		} else {
			portrait.ProfilePath = img.ProfilePath()
		}
		return append(acc, portrait)
	}, make([]CastPortrait, 0, len(lookups)))
}
