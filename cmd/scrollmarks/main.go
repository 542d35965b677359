package main

import (
	"fmt"
	"os"
	"strconv"

	"scrollmarks/pkg/html"
	"scrollmarks/pkg/js"
	"scrollmarks/pkg/page"
	"scrollmarks/pkg/render"
	"scrollmarks/pkg/scrollmarks"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <input.html> <output.png> [scroll-offset]\n", os.Args[0])
		os.Exit(1)
	}
	inputFile := os.Args[1]
	outputFile := os.Args[2]
	scrollOffset := 0.0
	if len(os.Args) > 3 {
		v, err := strconv.ParseFloat(os.Args[3], 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing scroll offset: %v\n", err)
			os.Exit(1)
		}
		scrollOffset = v
	}

	htmlContent, err := os.ReadFile(inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}
	doc, err := html.Parse(string(htmlContent))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing HTML: %v\n", err)
		os.Exit(1)
	}

	viewportWidth := 800.0
	viewportHeight := 600.0
	view := page.NewDocumentView(doc, viewportWidth, viewportHeight)

	engine := js.New(view)
	if err := engine.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Script error: %v\n", err)
	}

	// Prefer the instance page scripts created; fall back to marker-driven
	// discovery, then to a default instance.
	var instance *scrollmarks.Instance
	if scripted := engine.Instances(); len(scripted) > 0 {
		instance = scripted[0]
	} else {
		instance, _ = scrollmarks.AutoDiscover(view)
		if instance == nil {
			instance = scrollmarks.New(view, scrollmarks.Config{})
		}
	}

	view.SetScrollOffset(scrollOffset)
	view.RunPending()

	renderer := render.NewRenderer(int(viewportWidth), int(viewportHeight))
	cfg := instance.Config()
	renderer.SetMarkSource(cfg.Selector, cfg.AttributeName)
	renderer.Render(view)
	if err := renderer.SavePNG(outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully rendered %s to %s\n", inputFile, outputFile)
	fmt.Printf("Collected %d marks\n", len(instance.Marks()))
}
