package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"github.com/mr0721/Kopernicus/internal/dds"
	"github.com/mr0721/Kopernicus/internal/texture"
)

// texpreview expands a texture asset (DDS container or encoded image) to
// RGBA and writes a WebP preview, optionally downscaled.
func main() {
	in := flag.String("in", "", "Input texture (dds/png/jpg/tga)")
	out := flag.String("out", "preview.webp", "Output WebP path")
	maxSize := flag.Int("size", 0, "Downscale so the longer edge fits this (0 = keep)")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: texpreview -in <texture> [-out preview.webp] [-size N]")
		os.Exit(2)
	}

	if err := run(*in, *out, *maxSize); err != nil {
		fmt.Fprintf(os.Stderr, "ERR %v\n", err)
		os.Exit(1)
	}
}

func run(in, out string, maxSize int) error {
	tex, err := texture.Load(in)
	if err != nil {
		return err
	}

	img := tex.Image
	if tex.DDS != nil {
		img, err = dds.ToImage(tex.DDS)
		if err != nil {
			return err
		}
	}

	if maxSize > 0 {
		img = downscale(img, maxSize)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("webp encode %s: %w", out, err)
	}
	fmt.Printf("OK  %s -> %s  (%dx%d)\n", in, out, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

func downscale(img *image.NRGBA, maxSize int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	long := w
	if h > long {
		long = h
	}
	if long <= maxSize {
		return img
	}

	w = w * maxSize / long
	h = h * maxSize / long
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
