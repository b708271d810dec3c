package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taigrr/orient/internal/config"
	"github.com/taigrr/orient/internal/logging"
	"github.com/taigrr/orient/pkg/math3d"
	"github.com/taigrr/orient/pkg/models"
	"github.com/taigrr/orient/pkg/orientation"
	"github.com/taigrr/orient/pkg/render"
)

// addSceneFlags registers the flags that shape a render.Scene.
func addSceneFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Bool("aligned", true, "rotate the view so the frame is upright")
	f.Bool("grid", true, "draw a ground grid")
	f.Bool("body", true, "draw the device body")
	f.Bool("components", false, "draw the components of the vector")
	f.Float64("yaw", 30, "orbit yaw in degrees")
	f.Float64("pitch", 20, "orbit pitch in degrees")
}

func sceneFromFlags(cmd *cobra.Command, res orientation.Result) (*render.Scene, error) {
	f := cmd.Flags()
	s := &render.Scene{Result: res}

	var err error
	get := func(name string, dst *bool) {
		if err == nil {
			*dst, err = f.GetBool(name)
		}
	}
	get("aligned", &s.Aligned)
	get("grid", &s.ShowGrid)
	get("body", &s.ShowBody)
	get("components", &s.ShowComponents)
	if err != nil {
		return nil, err
	}

	yaw, err := f.GetFloat64("yaw")
	if err != nil {
		return nil, err
	}
	pitch, err := f.GetFloat64("pitch")
	if err != nil {
		return nil, err
	}
	s.Yaw, s.Pitch = math3d.Radians(yaw), math3d.Radians(pitch)
	return s, nil
}

// parseColor parses "R,G,B" with components in 0-255.
func parseColor(s string) (render.Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return render.Color{}, fmt.Errorf("parse color %q: want R,G,B", s)
	}
	var rgb [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return render.Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		rgb[i] = uint8(v)
	}
	return render.RGB(rgb[0], rgb[1], rgb[2]), nil
}

// maxImageSize bounds each side of a snapshot image.
const maxImageSize = 8192

func newSnapshotCmd(logs *logging.SlogManager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render the frame and vector to a PNG image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindFlags(cmd, map[string]string{
				"render.width":    "width",
				"render.height":   "height",
				"view.background": "background",
			}); err != nil {
				return err
			}
			width, height := config.GetInt("render.width"), config.GetInt("render.height")
			if width <= 0 || height <= 0 || width > maxImageSize || height > maxImageSize {
				return fmt.Errorf("invalid image size %dx%d (each side 1..%d)", width, height, maxImageSize)
			}
			bg, err := parseColor(config.GetString("view.background"))
			if err != nil {
				return err
			}
			out, err := cmd.Flags().GetString("out")
			if err != nil {
				return err
			}

			r, err := readingFromFlags(cmd)
			if err != nil {
				return err
			}
			res, err := orientation.Resolve(r)
			if err != nil {
				return err
			}
			scene, err := sceneFromFlags(cmd, res)
			if err != nil {
				return err
			}

			fb := render.Snapshot(scene, width, height, bg)
			if err := fb.SavePNG(out); err != nil {
				return fmt.Errorf("save png: %w", err)
			}
			logs.Logger().Info("Snapshot written", "path", out, "width", width, "height", height)
			return nil
		},
	}
	addReadingFlags(cmd, true)
	addSceneFlags(cmd)
	f := cmd.Flags()
	f.StringP("out", "o", "frame.png", "output PNG path")
	f.Int("width", 640, "image width in pixels")
	f.Int("height", 480, "image height in pixels")
	f.String("background", "30,30,40", "background color (R,G,B)")
	return cmd
}

func newExportCmd(logs *logging.SlogManager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the frame and vector as a glTF binary (.glb)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindFlags(cmd, map[string]string{"export.scale": "scale"}); err != nil {
				return err
			}
			scale := config.GetFloat64("export.scale")
			if scale <= 0 {
				return fmt.Errorf("invalid scale %v", scale)
			}
			out, err := cmd.Flags().GetString("out")
			if err != nil {
				return err
			}

			r, err := readingFromFlags(cmd)
			if err != nil {
				return err
			}
			res, err := orientation.Resolve(r)
			if err != nil {
				return err
			}

			mesh := models.FrameMesh(res, scale)
			mesh.Name = strings.TrimSuffix(filepath.Base(out), filepath.Ext(out))
			if err := models.SaveGLB(mesh, out); err != nil {
				return err
			}
			if info, err := os.Stat(out); err == nil {
				logs.Logger().Info("Model written", "path", out, "parts", len(mesh.Parts),
					"segments", mesh.SegmentCount(), "bytes", info.Size())
			}
			return nil
		},
	}
	addReadingFlags(cmd, true)
	f := cmd.Flags()
	f.StringP("out", "o", "frame.glb", "output .glb path")
	f.Float64("scale", 1, "length of each axis in model units")
	return cmd
}
