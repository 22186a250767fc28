package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/genogram/pkg/errors"
	"github.com/matzehuels/genogram/pkg/observability"
	"github.com/matzehuels/genogram/pkg/render/genogram/sink"
	"github.com/matzehuels/genogram/pkg/render/genogram/styles"
	"github.com/matzehuels/genogram/pkg/render/nodelink"
)

// Render produces res.Document in opts.Format from a laid out Result.
// Missing icons are logged and recorded in res.Missing; they never fail the
// render.
func (r *Runner) Render(ctx context.Context, res *Result, opts Options) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	logger := r.logger(opts)

	start := time.Now()
	data, missing, err := r.render(ctx, res, opts)
	elapsed := time.Since(start)
	observability.Pipeline().OnRender(ctx, opts.Format, len(data), elapsed, err)
	if err != nil {
		return err
	}

	for _, path := range missing {
		logger.Debug("icon not available, skipped", "path", path)
	}
	res.Format = opts.Format
	res.Document = data
	res.Missing = missing
	res.Hash = hashDocument(data)
	res.Stats.RenderTime = elapsed

	logger.Info("rendered genogram", "format", opts.Format, "bytes", len(data), "duration", elapsed)
	return nil
}

func (r *Runner) render(ctx context.Context, res *Result, opts Options) ([]byte, []string, error) {
	switch opts.Format {
	case FormatJSON:
		data, err := sink.RenderJSON(res.Family, res.Index, res.Layout,
			sink.WithJSONGeneration(res.Generations),
			sink.WithJSONStyle(opts.Style))
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeRender, err, "encode layout")
		}
		return data, nil, nil
	case FormatDOT:
		return []byte(r.dot(res, opts)), nil, nil
	case FormatNodelink:
		data, err := nodelink.RenderSVG(ctx, r.dot(res, opts))
		return data, nil, err
	}

	style, _ := styles.ByName(opts.Style)
	doc := sink.Assemble(res.Family, res.Index, res.Layout,
		sink.WithStyle(style),
		sink.WithIcons(r.Icons))

	switch opts.Format {
	case FormatSVG:
		return doc.SVG, doc.Missing, nil
	case FormatHTML:
		data, err := sink.RenderHTML(doc.SVG, sink.WithTitle(opts.Title))
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeRender, err, "build HTML page")
		}
		return data, doc.Missing, nil
	case FormatPDF:
		data, err := sink.RenderPDF(ctx, doc.SVG)
		return data, doc.Missing, err
	case FormatPNG:
		data, err := sink.RenderPNG(ctx, doc.SVG, sink.WithScale(opts.Scale))
		return data, doc.Missing, err
	default:
		return nil, nil, errors.New(errors.ErrCodeUnsupported, "format %q", opts.Format)
	}
}

func (r *Runner) dot(res *Result, opts Options) string {
	return nodelink.ToDOT(res.Family, res.Index, res.Generations, nodelink.Options{Detailed: opts.Detailed})
}
