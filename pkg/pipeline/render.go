package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/mindscape/pkg/cache"
	"github.com/matzehuels/mindscape/pkg/graph"
	"github.com/matzehuels/mindscape/pkg/render"
	"github.com/matzehuels/mindscape/pkg/render/nodelink"
)

const keyTypeRender = "render"

// Render produces the artifacts in opts.Formats from a snapshot. SVG output
// is cached by the hash of its DOT source; PDF and PNG are derived from it.
func (r *Runner) Render(ctx context.Context, snap graph.Snapshot, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	dot := nodelink.ToDOT(snap.Model(), nodelink.Options{Detailed: opts.Detailed, Scale: opts.Scale})

	var svg []byte
	needSVG := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = r.renderSVG(ctx, dot)
		return svg, err
	}

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatJSON:
			data, err = graph.MarshalModel(snap)
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = needSVG()
		case FormatPDF:
			if data, err = needSVG(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		case FormatPNG:
			if data, err = needSVG(); err == nil {
				data, err = render.ToPNG(ctx, data, DefaultPNGScale)
			}
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func (r *Runner) renderSVG(ctx context.Context, dot string) ([]byte, error) {
	key := r.Keyer.RenderKey(cache.Hash([]byte(dot)), FormatSVG)
	if data, hit, err := r.Cache.Get(ctx, key); err != nil {
		r.Logger.Warn("render cache read failed", "err", err)
	} else if hit {
		r.Hooks.OnCacheHit(ctx, keyTypeRender)
		return data, nil
	}
	r.Hooks.OnCacheMiss(ctx, keyTypeRender)

	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	if err := r.Cache.Set(ctx, key, svg, 0); err != nil {
		r.Logger.Warn("render cache write failed", "err", err)
	} else {
		r.Hooks.OnCacheSet(ctx, keyTypeRender, len(svg))
	}
	return svg, nil
}
