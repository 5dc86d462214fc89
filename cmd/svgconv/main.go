// Command svgconv converts an SVG file using one of the
// registered backends.
//
//	svgconv [-backend raster|pdf|json|source] [-o output] [-optimize] input.svg
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kpango/glg"

	"github.com/benoitkugler/svgscene/svgdraw"
	_ "github.com/benoitkugler/svgscene/svgjson"
	"github.com/benoitkugler/svgscene/svgopt"
	_ "github.com/benoitkugler/svgscene/svgpdf"
	"github.com/benoitkugler/svgscene/svgprocess"
	_ "github.com/benoitkugler/svgscene/svgraster"
	"github.com/benoitkugler/svgscene/svgscene"
	_ "github.com/benoitkugler/svgscene/svgsource"
)

var extensions = map[string]string{
	"raster": ".png",
	"pdf":    ".pdf",
	"json":   ".json",
	"source": ".txt",
}

const defaultSize = 512

func outputPath(input, backend string) string {
	ext, ok := extensions[backend]
	if !ok {
		ext = "." + backend
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}

// outputSize returns the size from the config, or the document one.
func outputSize(cfg Config, sc *svgscene.Scene) (float64, float64) {
	if cfg.Width > 0 && cfg.Height > 0 {
		return cfg.Width, cfg.Height
	}
	if size, ok := sc.DocumentSize(); ok {
		return size.W, size.H
	}
	glg.Warnf("No document size, using %dx%d", defaultSize, defaultSize)
	return defaultSize, defaultSize
}

func main() {
	cfg, args, err := loadConfig(os.Args[1:])
	if err != nil {
		glg.Fatalf("Invalid configuration: %v", err)
	}
	if err := setupLogging(cfg.LogLevel); err != nil {
		glg.Fatal(err)
	}
	if len(args) != 1 {
		glg.Fatalf("Exactly one input file is required (available backends: %s)", strings.Join(svgdraw.Backends(), ", "))
	}
	input := args[0]

	f, err := os.Open(input)
	if err != nil {
		glg.Fatalf("Cannot open file %s: %v", input, err)
	}
	opts := svgprocess.Options{ErrorMode: svgprocess.WarnErrorMode}
	if cfg.Strict {
		opts.ErrorMode = svgprocess.StrictErrorMode
	}
	res, err := svgprocess.ProcessReader(f, opts)
	f.Close()
	if err != nil {
		glg.Fatalf("Cannot parse file %s: %v", input, err)
	}

	if cfg.Optimize {
		st := svgopt.Optimize(res.Scene)
		glg.Infof("Optimized: %d groups flattened, %d paths combined", st.Flattened, st.Combined)
	}

	width, height := outputSize(cfg, res.Scene)
	target, err := svgdraw.NewBackend(cfg.Backend, svgdraw.Config{Width: width, Height: height})
	if err != nil {
		glg.Fatal(err)
	}
	if err := svgdraw.NewRenderer(res.Scene).Render(target); err != nil {
		glg.Fatalf("Cannot render %s: %v", input, err)
	}

	output := cfg.Output
	if output == "" {
		output = outputPath(input, cfg.Backend)
	}
	if err := target.WriteFile(output); err != nil {
		glg.Fatalf("Cannot write file %s: %v", output, err)
	}
	glg.Infof("%s written", output)
}
