// Package inline writes catalog data as JSON without any interaction.
package inline

import (
	"context"
	"errors"
	"os"

	"github.com/marquee-cli/marquee/catalog"
	"github.com/marquee-cli/marquee/log"
	"github.com/samber/lo"
	logrus "github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/iter"
)

// ErrNothingToDo is returned when neither a resource nor details were requested.
var ErrNothingToDo = errors.New("either a resource or details must be given")

func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	if target, ok := options.Details.Get(); ok {
		output, err := details(ctx, options, target)
		if err != nil {
			return err
		}
		return writeJson(options.Out, output)
	}

	resource, ok := options.Resource.Get()
	if !ok {
		return ErrNothingToDo
	}

	output, err := listing(ctx, options, resource)
	if err != nil {
		return err
	}
	return writeJson(options.Out, output)
}

func listing(ctx context.Context, options *Options, resource catalog.Resource) (*Output, error) {
	if err := resource.Validate(options.Filters); err != nil {
		return nil, err
	}

	q := options.Queries.Listing(resource, options.Filters)

	st, err := q.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if st.Err != nil {
		return nil, st.Err
	}

	pages := max(1, options.Pages)
	for st.HasNextPage && len(st.Pages) < pages {
		if st, err = q.FetchMore(ctx); err != nil {
			return nil, err
		}
	}

	log.WithFields(logrus.Fields{
		"resource": resource,
		"pages":    len(st.Pages),
	}).Info("inline listing loaded")

	output := &Output{
		Resource: string(resource),
		Params:   options.Filters.Params(),
		Pages:    len(st.Pages),
	}
	if last, ok := lo.Last(st.Pages); ok {
		output.TotalPages = last.TotalPages
		output.TotalResults = last.TotalResults
	}

	items := st.Items()
	output.Results = iter.Mapper[catalog.MediaItem, *Item]{MaxGoroutines: 4}.Map(items, func(item *catalog.MediaItem) *Item {
		result := newItem(*item, options.ImageBaseURL)
		if options.Videos {
			result.Trailer = trailer(ctx, options, (*item).Kind(), (*item).ItemID())
		}
		return result
	})

	return output, nil
}

func details(ctx context.Context, options *Options, target Target) (*Output, error) {
	item, err := options.Queries.Details(target.Kind, target.ID).Fetch(ctx)
	if err != nil {
		return nil, err
	}

	result := newItem(item, options.ImageBaseURL)

	if options.Videos {
		result.Trailer = trailer(ctx, options, target.Kind, target.ID)
	}

	if options.Cast {
		portraits, err := options.Queries.Cast(item).Fetch(ctx)
		if err != nil {
			return nil, err
		}
		result.Cast = portraits
	}

	return &Output{Details: result}, nil
}

// trailer is the trailer URL of an item, or "" when there is none or the
// lookup failed.
func trailer(ctx context.Context, options *Options, kind catalog.Kind, id int) string {
	videos, err := options.Queries.Videos(kind, id, false).Fetch(ctx)
	if err != nil {
		log.Warnf("videos of %s %d: %v", kind, id, err)
		return ""
	}

	video, ok := catalog.FindTrailer(videos).Get()
	if !ok {
		return ""
	}
	return video.URL()
}
