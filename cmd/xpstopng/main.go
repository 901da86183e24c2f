// Command xpstopng rasterizes one page of an XPS package to a PNG
// file, and can dump the package metadata instead.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"

	"github.com/goxps/goxps/doc"
	"github.com/goxps/goxps/render"
)

type options struct {
	xpsPath string
	outPath string
	page    int
	scale   float64
	info    bool
	strict  bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "xpstopng: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "xpstopng: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: xpstopng [flags] <file.xps>\n")
		flag.PrintDefaults()
	}
	flag.IntVar(&opts.page, "page", 0, "Page number to render, zero based, across all documents")
	flag.Float64Var(&opts.scale, "scale", 1, "Pixels per page unit (1/96 inch)")
	flag.StringVar(&opts.outPath, "o", "page.png", "Output PNG path")
	flag.BoolVar(&opts.info, "info", false, "Print package metadata and page count instead of rendering")
	flag.BoolVar(&opts.strict, "strict", false, "Fail on the first markup defect instead of skipping it")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return opts, fmt.Errorf("expected exactly one input file")
	}
	opts.xpsPath = flag.Arg(0)
	if opts.scale <= 0 {
		return opts, fmt.Errorf("scale must be positive")
	}
	return opts, nil
}

func run(opts options) error {
	f, err := doc.Open(opts.xpsPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if opts.info {
		return printInfo(f)
	}

	page, err := f.Page(opts.page)
	if err != nil {
		return err
	}
	mode := render.WarnErrorMode
	if opts.strict {
		mode = render.StrictErrorMode
	}
	img, err := page.RenderImage(opts.scale, mode)
	if err != nil {
		return err
	}

	out, err := os.Create(opts.outPath)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func printInfo(f *doc.File) error {
	info, err := f.Info()
	if err != nil {
		return err
	}
	fmt.Printf("documents: %d\n", f.NumDocuments())
	fmt.Printf("pages:     %d\n", f.NumPages())
	if info.Title != "" {
		fmt.Printf("title:     %s\n", info.Title)
	}
	if info.Creator != "" {
		fmt.Printf("creator:   %s\n", info.Creator)
	}
	if !info.Created.IsZero() {
		fmt.Printf("created:   %s\n", info.Created.Format("2006-01-02 15:04:05"))
	}
	for i := 0; i < f.NumPages(); i++ {
		page, err := f.Page(i)
		if err != nil {
			return err
		}
		w, h, err := page.Size()
		if err != nil {
			return err
		}
		fmt.Printf("page %d:    %g x %g\n", i, w, h)
	}
	return nil
}
