package sink

import (
	"bytes"
	"html/template"
)

// SVGPanZoomURL is the pan/zoom script the HTML shell loads.
const SVGPanZoomURL = "https://cdn.jsdelivr.net/npm/svg-pan-zoom@3.6.1/dist/svg-pan-zoom.min.js"

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <script src="{{.Script}}"></script>
  <style>
    html, body { margin: 0; height: 100%; font-family: Arial, Helvetica, sans-serif; background: #f4f4f4; }
    .toolbar { position: fixed; top: 12px; left: 12px; z-index: 10; display: flex; gap: 6px; }
    .toolbar button { padding: 6px 12px; border: 1px solid #999; border-radius: 4px; background: #fff; cursor: pointer; }
    .toolbar button:hover { background: #eee; }
    #container { width: 100%; height: 100%; }
    #container svg { width: 100%; height: 100%; }
  </style>
</head>
<body>
  <div class="toolbar">
    <button id="zoom-in" title="Zoom in">+</button>
    <button id="zoom-out" title="Zoom out">&minus;</button>
    <button id="reset" title="Reset">Reset</button>
    <button id="fit" title="Fit">Fit</button>
  </div>
  <div id="container">
{{.SVG}}  </div>
  <script>
    var panZoom = svgPanZoom('#genogram-svg', {
      zoomEnabled: true,
      controlIconsEnabled: false,
      fit: true,
      center: true,
      minZoom: 0.2,
      maxZoom: 10
    });
    document.getElementById('zoom-in').addEventListener('click', function () { panZoom.zoomIn(); });
    document.getElementById('zoom-out').addEventListener('click', function () { panZoom.zoomOut(); });
    document.getElementById('reset').addEventListener('click', function () { panZoom.resetZoom(); panZoom.center(); });
    document.getElementById('fit').addEventListener('click', function () { panZoom.fit(); panZoom.center(); });
    window.addEventListener('resize', function () { panZoom.resize(); panZoom.fit(); panZoom.center(); });
  </script>
</body>
</html>
`

var shell = template.Must(template.New("genogram").Parse(htmlTemplate))

// DefaultTitle is the page title used when none is given.
const DefaultTitle = "Genogram"

// HTMLOption configures [RenderHTML].
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	title string
}

// WithTitle sets the page title.
func WithTitle(title string) HTMLOption {
	return func(r *htmlRenderer) {
		if title != "" {
			r.title = title
		}
	}
}

// RenderHTML wraps an SVG document produced by [RenderSVG] in a standalone
// page with zoom in, zoom out, reset and fit controls.
func RenderHTML(svg []byte, opts ...HTMLOption) ([]byte, error) {
	r := htmlRenderer{title: DefaultTitle}
	for _, opt := range opts {
		opt(&r)
	}

	data := struct {
		Title  string
		Script string
		SVG    template.HTML
	}{
		Title:  r.title,
		Script: SVGPanZoomURL,
		SVG:    template.HTML(svg),
	}

	var buf bytes.Buffer
	if err := shell.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
