// logogen converts a PNG into the raw RGBA file embedded by the asset
// package, along with a Go file holding its dimensions.
//
// Usage:
//
//	logogen --in assets/logo.png --out internal/asset --pkg asset
package main

import (
	"bytes"
	"fmt"
	"image"
	imagedraw "image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	flagIn   string
	flagOut  string
	flagPkg  string
	flagName string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "logogen",
	Short: "Convert a PNG into embeddable raw RGBA",
	RunE:  runGenerate,
}

func init() {
	rootCmd.Flags().StringVar(&flagIn, "in", "assets/logo.png", "Source PNG")
	rootCmd.Flags().StringVar(&flagOut, "out", ".", "Output directory")
	rootCmd.Flags().StringVar(&flagPkg, "pkg", "asset", "Package name of the generated Go file")
	rootCmd.Flags().StringVar(&flagName, "name", "logo", "Base name of the generated files")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	f, err := os.Open(flagIn)
	if err != nil {
		return err
	}
	defer f.Close()

	pix, w, h, err := decodeRGBA(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", flagIn, err)
	}

	rawPath := filepath.Join(flagOut, flagName+".rgba")
	if err := os.WriteFile(rawPath, pix, 0o644); err != nil {
		return err
	}
	srcPath := filepath.Join(flagOut, flagName+"_gen.go")
	if err := os.WriteFile(srcPath, generateSource(flagPkg, w, h), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d) and %s\n", rawPath, w, h, srcPath)
	return nil
}

// decodeRGBA decodes a PNG into straight (non-premultiplied) RGBA bytes.
func decodeRGBA(r io.Reader) ([]byte, int, int, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, 0, 0, err
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	imagedraw.Draw(dst, dst.Bounds(), img, b.Min, imagedraw.Src)
	return dst.Pix, b.Dx(), b.Dy(), nil
}

func generateSource(pkg string, w, h int) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by logogen; DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg)
	fmt.Fprintf(&buf, "// Logo dimensions in pixels.\n")
	fmt.Fprintf(&buf, "const (\n\tLogoWidth  = %d\n\tLogoHeight = %d\n)\n", w, h)
	return buf.Bytes()
}
