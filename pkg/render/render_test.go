package render

import (
	"testing"

	"scrollmarks/pkg/html"
	"scrollmarks/pkg/page"
	"scrollmarks/pkg/scrollmarks"
)

const previewPage = `
	<body>
		<div style="height: 100px">intro</div>
		<section style="height: 200px" data-scroll-color="red">hot</section>
		<div style="height: 1700px">rest</div>
	</body>`

func newPreviewView(t *testing.T) *page.DocumentView {
	t.Helper()
	doc, err := html.Parse(previewPage)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return page.NewDocumentView(doc, 800, 500)
}

func colorAt(t *testing.T, r *Renderer, x, y int) (uint8, uint8, uint8) {
	t.Helper()
	c := r.Image().At(x, y)
	cr, cg, cb, _ := c.RGBA()
	return uint8(cr >> 8), uint8(cg >> 8), uint8(cb >> 8)
}

func TestRenderPaintsMarkedContent(t *testing.T) {
	view := newPreviewView(t)
	in := scrollmarks.New(view, scrollmarks.Config{})
	defer in.Destroy()

	r := NewRenderer(400, 500)
	r.Render(view)

	// The marked section spans document 100..300px; at scroll 0 with a
	// 500px viewport that is on screen.
	cr, cg, cb := colorAt(t, r, 100, 200)
	if cr != 255 || cg != 0 || cb != 0 {
		t.Errorf("marked band not painted: got rgb(%d, %d, %d)", cr, cg, cb)
	}

	// Above the section the page background shows through.
	cr, cg, cb = colorAt(t, r, 100, 50)
	if cr == 255 && cg == 0 && cb == 0 {
		t.Error("background painted with mark color")
	}
}

func TestRenderPaintsTrackGradient(t *testing.T) {
	view := newPreviewView(t)
	in := scrollmarks.New(view, scrollmarks.Config{})
	defer in.Destroy()

	// Scroll far enough that the thumb clears the 5..15% band.
	view.SetScrollOffset(800)

	r := NewRenderer(400, 500)
	r.Render(view)

	// Strip occupies the rightmost 14px. The mark band covers 5..15% of
	// the 500px strip, so y=50 falls inside it.
	cr, cg, cb := colorAt(t, r, 392, 50)
	if cr != 255 || cg != 0 || cb != 0 {
		t.Errorf("track band: got rgb(%d, %d, %d), want red", cr, cg, cb)
	}

	// Track fill between marks is the default #1a1a2e.
	cr, cg, cb = colorAt(t, r, 392, 450)
	if cr != 0x1a || cg != 0x1a || cb != 0x2e {
		t.Errorf("track fill: got rgb(%d, %d, %d), want #1a1a2e", cr, cg, cb)
	}
}

func TestRenderPaintsThumb(t *testing.T) {
	view := newPreviewView(t)
	in := scrollmarks.New(view, scrollmarks.Config{})
	defer in.Destroy()

	// 800/2000 scroll puts the 125px thumb at y=200 over plain track.
	view.SetScrollOffset(800)

	r := NewRenderer(400, 500)
	r.Render(view)

	cr, _, _ := colorAt(t, r, 392, 260)
	if cr <= 0x1a {
		t.Errorf("thumb not painted over track: red channel %d", cr)
	}
}

func TestRenderHonorsConfiguredMarkSource(t *testing.T) {
	doc, err := html.Parse(`
		<body>
			<div style="height: 100px">intro</div>
			<section class="hot" style="height: 200px" data-tone="red">hot</section>
			<div style="height: 1700px">rest</div>
		</body>`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	view := page.NewDocumentView(doc, 800, 500)
	in := scrollmarks.New(view, scrollmarks.Config{
		Selector:      ".hot",
		AttributeName: "data-tone",
	})
	defer in.Destroy()

	r := NewRenderer(400, 500)
	cfg := in.Config()
	r.SetMarkSource(cfg.Selector, cfg.AttributeName)
	r.Render(view)

	// Content band for the custom-attribute mark, on screen at 100..300px.
	cr, cg, cb := colorAt(t, r, 100, 200)
	if cr != 255 || cg != 0 || cb != 0 {
		t.Errorf("custom-source band not painted: got rgb(%d, %d, %d)", cr, cg, cb)
	}
}

func TestRenderWithoutInstance(t *testing.T) {
	view := newPreviewView(t)

	r := NewRenderer(400, 500)
	r.Render(view)

	// No injected style means no strip; the content fills the full width.
	cr, cg, cb := colorAt(t, r, 399, 150)
	if cr != 255 || cg != 0 || cb != 0 {
		t.Errorf("content should span full width: got rgb(%d, %d, %d)", cr, cg, cb)
	}
}

func TestParseScrollbarStyle(t *testing.T) {
	text := "html::-webkit-scrollbar { width: 10px; }\n" +
		"html::-webkit-scrollbar-track { background: linear-gradient(to bottom, red 0.00%, red 100.00%); }\n" +
		"html::-webkit-scrollbar-thumb { background: rgba(255, 255, 255, 0.3); border-radius: 5px; }\n"

	style := parseScrollbarStyle(text)
	if !style.present {
		t.Fatal("style not recognized")
	}
	if style.width != 10 {
		t.Errorf("width = %d, want 10", style.width)
	}
	if style.trackBackground != "linear-gradient(to bottom, red 0.00%, red 100.00%)" {
		t.Errorf("track = %q", style.trackBackground)
	}
	if style.thumbBackground != "rgba(255, 255, 255, 0.3)" {
		t.Errorf("thumb = %q", style.thumbBackground)
	}
	if style.thumbRadius != 5 {
		t.Errorf("radius = %v, want 5", style.thumbRadius)
	}
}
