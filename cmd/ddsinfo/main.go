package main

import (
	"fmt"
	"os"

	"github.com/mr0721/Kopernicus/internal/dds"
)

func inspect(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	tex, err := dds.Decode(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Printf("%s\n", path)
	fmt.Printf("  format:      %s\n", tex.Format)
	fmt.Printf("  size:        %dx%d\n", tex.Width, tex.Height)
	fmt.Printf("  mip levels:  %d\n", tex.MipMapCount)
	fmt.Printf("  payload:     %d bytes (base level %d)\n", len(tex.Data), tex.LinearSize())
	if tex.Format.Compressed() {
		fmt.Printf("  block size:  %d bytes\n", tex.Format.BlockBytes())
	} else {
		fmt.Printf("  pixel size:  %d bytes\n", tex.Format.BytesPerPixel())
	}
	return nil
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: ddsinfo <file.dds> [...]")
		os.Exit(2)
	}

	errors := 0
	for _, path := range os.Args[1:] {
		if err := inspect(path); err != nil {
			fmt.Fprintf(os.Stderr, "ERR %v\n", err)
			errors++
		}
	}
	if errors > 0 {
		os.Exit(1)
	}
}
