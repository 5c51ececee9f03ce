package output

import (
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"
)

var (
	rendererMu sync.Mutex
	// Renderers by style and wrap width.
	renderers = map[string]*glamour.TermRenderer{}
)

// Markdown renders task descriptions for one output.
type Markdown struct {
	style string
	width int
}

// NewMarkdown picks a style for w: plain when w is not a color terminal,
// dark or light otherwise.
func NewMarkdown(w io.Writer, width int) *Markdown {
	return &Markdown{style: StyleFor(w), width: width}
}

// StyleFor returns the glamour style name suited to w.
func StyleFor(w io.Writer) string {
	out := termenv.NewOutput(w)
	if out.Profile == termenv.Ascii {
		return styles.NoTTYStyle
	}
	if out.HasDarkBackground() {
		return styles.DarkStyle
	}
	return styles.LightStyle
}

// Render renders md. On renderer failure the source text is returned.
func (m *Markdown) Render(md string) string {
	return RenderMarkdown(md, m.style, m.width)
}

// RenderMarkdown renders md with a cached renderer for style and width.
func RenderMarkdown(md, style string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	key := style + ":" + strconv.Itoa(width)
	rendererMu.Lock()
	r := renderers[key]
	rendererMu.Unlock()

	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		rendererMu.Lock()
		if existing := renderers[key]; existing != nil {
			r = existing
		} else {
			renderers[key] = rr
			r = rr
		}
		rendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
