package main

import (
	"fmt"
	"image"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"scrollmarks/pkg/html"
	"scrollmarks/pkg/js"
	"scrollmarks/pkg/page"
	"scrollmarks/pkg/render"
	"scrollmarks/pkg/scrollmarks"
	stdnet "scrollmarks/std/net"
)

const (
	viewWidth  = 1024
	viewHeight = 700
)

func main() {
	a := app.New()
	w := a.NewWindow("scrollmarks viewer")
	w.Resize(fyne.NewSize(1024, 768))

	// Blank initial render target
	target := image.NewRGBA(image.Rect(0, 0, viewWidth, viewHeight))
	canvasImg := canvas.NewImageFromImage(target)
	canvasImg.FillMode = canvas.ImageFillOriginal

	// Status label
	status := widget.NewLabel("Enter an HTML file path and press Enter")

	var view *page.DocumentView
	var markCfg scrollmarks.Config

	repaint := func() {
		if view == nil {
			return
		}
		view.RunPending()
		renderer := render.NewRenderer(viewWidth, viewHeight)
		renderer.SetMarkSource(markCfg.Selector, markCfg.AttributeName)
		renderer.Render(view)
		canvasImg.Image = renderer.Image()
		canvasImg.Refresh()
	}

	// Scroll slider along the bottom, 0..1 of the scrollable range
	scroll := widget.NewSlider(0, 1)
	scroll.Step = 0.01
	scroll.OnChanged = func(frac float64) {
		if view == nil {
			return
		}
		max := view.ScrollHeight() - view.ViewportHeight()
		if max < 0 {
			max = 0
		}
		view.SetScrollOffset(frac * max)
		repaint()
	}

	// Path entry, taking a local file or an http(s) URL
	pathEntry := widget.NewEntry()
	pathEntry.SetPlaceHolder("page.html or https://example.com")
	pathEntry.OnSubmitted = func(path string) {
		status.SetText("Loading " + path + "...")

		var body []byte
		var err error
		if stdnet.IsNetworkURL(path) {
			body, err = stdnet.Fetch(path)
		} else {
			body, err = os.ReadFile(path)
		}
		if err != nil {
			status.SetText("Error: " + err.Error())
			return
		}
		doc, err := html.Parse(string(body))
		if err != nil {
			status.SetText("Parse error: " + err.Error())
			return
		}

		loaded := page.NewDocumentView(doc, viewWidth, viewHeight)
		engine := js.New(loaded)
		if err := engine.Execute(); err != nil {
			status.SetText("Script error: " + err.Error())
		}

		var instance *scrollmarks.Instance
		if scripted := engine.Instances(); len(scripted) > 0 {
			instance = scripted[0]
		} else {
			instance, _ = scrollmarks.AutoDiscover(loaded)
			if instance == nil {
				instance = scrollmarks.New(loaded, scrollmarks.Config{})
			}
		}

		view = loaded
		markCfg = instance.Config()
		scroll.SetValue(0)
		repaint()
		status.SetText(fmt.Sprintf("%s: %d marks", path, len(instance.Marks())))
		w.SetTitle("scrollmarks viewer - " + path)
	}

	// Layout: path entry on top, slider and status at bottom, image center
	topBar := container.NewBorder(nil, nil, nil, nil, pathEntry)
	bottom := container.NewVBox(scroll, status)
	content := container.NewBorder(topBar, bottom, nil, nil, canvasImg)
	w.SetContent(content)

	// Keep focus on the entry to prevent Tab freeze with no other focusable widgets
	w.Canvas().Focus(pathEntry)

	w.ShowAndRun()
}
