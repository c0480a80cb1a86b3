package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lumenscan/dicomcore/pkg/dicom"
)

// NewPixelPreviewCmd reads a DICOM file and prints its PixelPipeline
// output: one "#RRGGBB"-per-pixel row per line of Columns pixels.
func NewPixelPreviewCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pixelpreview",
		Short: "render a DICOM file's pixel data as hex-color rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			uri, _ := cmd.Flags().GetString("uri")
			if uri == "" && len(args) > 0 {
				uri = args[0]
			}
			if uri == "" {
				return fmt.Errorf("a file path, \"-\" for stdin, or an http(s) URL is required")
			}

			data, err := fetch(ctx, cmd, uri)
			if err != nil {
				return err
			}

			full, err := dicom.ReadFile(data)
			if err != nil {
				return fmt.Errorf("decode %s: %w", uri, err)
			}

			pixelElem := dicom.GetPixelData(full.Main)
			if pixelElem == nil {
				return fmt.Errorf("%s has no PixelData element", uri)
			}

			params, err := dicom.PixelParamsFromDataset(full.Main)
			if err != nil {
				return fmt.Errorf("pixel parameters: %w", err)
			}

			if preset, _ := cmd.Flags().GetString("preset"); preset != "" {
				p, ok := dicom.FindPreset(preset)
				if !ok {
					return fmt.Errorf("unknown preset %q", preset)
				}
				params.WindowCenter = p.Center
				params.WindowWidth = p.Width
			}
			if center, _ := cmd.Flags().GetFloat64("window-center"); cmd.Flags().Changed("window-center") {
				params.WindowCenter = center
			}
			if width, _ := cmd.Flags().GetFloat64("window-width"); cmd.Flags().Changed("window-width") {
				params.WindowWidth = width
			}

			colors, err := dicom.RenderPixels(pixelElem.RawValue, params)
			if err != nil {
				return fmt.Errorf("render pixels: %w", err)
			}

			cols, _ := firstIntOrDefault(full.Main, "Columns", len(colors))
			writeRows(os.Stdout, colors, cols)
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("uri", "u", "", "file path, \"-\" for stdin, or an http(s) URL")
	pf.String("preset", "", "named window/level preset (SOFT_TISSUE, BONE, LUNG, BRAIN)")
	pf.Float64("window-center", 0, "override the dataset's WindowCenter")
	pf.Float64("window-width", 0, "override the dataset's WindowWidth")
	return cmd
}

func writeRows(w *os.File, colors []string, cols int) {
	if cols <= 0 {
		cols = len(colors)
	}
	for i := 0; i < len(colors); i += cols {
		end := i + cols
		if end > len(colors) {
			end = len(colors)
		}
		for _, c := range colors[i:end] {
			fmt.Fprint(w, c, " ")
		}
		fmt.Fprintln(w)
	}
}

func firstIntOrDefault(ds *dicom.Dataset, keyword string, def int) (int, bool) {
	e := dicom.GetTagValue(ds, keyword)
	if e == nil {
		return def, false
	}
	switch v := e.Value.(type) {
	case int64:
		return int(v), true
	case uint16:
		return int(v), true
	}
	return def, false
}
