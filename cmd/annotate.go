package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/axquery/internal/annotate"
	"github.com/mj1618/axquery/internal/ax"
	"github.com/mj1618/axquery/internal/model"
	"github.com/mj1618/axquery/internal/output"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Draw query results onto a screenshot",
	Long: `Run the query given by the find flags and outline every match on an image,
labelled with its result number. The image is the screen region of the
query scope (or of the application's first window), captured with
screencapture, unless --image supplies one.

Element frames are in screen points; an image larger than the region (a
Retina capture) is scaled to match.`,
	Example: `  axquery annotate --app Editor -d --role interactive --out /tmp/editor.png
  axquery annotate --tree editor.yaml --image shot.png --scope 1 --out labelled.png`,
	RunE: runAnnotate,
}

func init() {
	rootCmd.AddCommand(annotateCmd)
	addQueryFlags(annotateCmd)
	annotateCmd.Flags().String("image", "", "Annotate this PNG instead of capturing the screen")
	annotateCmd.Flags().String("out", "", "Output PNG path (required)")
	annotateCmd.Flags().Float64("scale", 1, "Resize the result by this factor")
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	imagePath, _ := cmd.Flags().GetString("image")
	out, _ := cmd.Flags().GetString("out")
	scale, _ := cmd.Flags().GetFloat64("scale")
	if out == "" {
		return errors.New("--out is required")
	}

	spec, err := specFromFlags(cmd)
	if err != nil {
		return err
	}
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	scope, els, err := spec.Run(root)
	if err != nil {
		return err
	}
	origin, ok := regionOf(scope)
	if !ok {
		return errors.New("scope has no on-screen frame to annotate")
	}

	if imagePath == "" {
		tmp, err := os.CreateTemp("", "axquery-*.png")
		if err != nil {
			return err
		}
		tmp.Close()
		defer os.Remove(tmp.Name())
		if err := annotate.CaptureScreen(cmd.Context(), origin, tmp.Name()); err != nil {
			return err
		}
		imagePath = tmp.Name()
	}
	img, err := annotate.Load(imagePath)
	if err != nil {
		return err
	}

	elements := model.Results(root, els)
	drawn := annotate.Scale(annotate.Draw(img, origin, elements), scale)
	if err := annotate.Save(out, drawn); err != nil {
		return err
	}
	logger.Info("annotated", "image", out, "elements", len(elements))
	return printResult(cmd, output.AnnotateResult{
		Image:    out,
		Width:    drawn.Bounds().Dx(),
		Height:   drawn.Bounds().Dy(),
		Elements: elements,
	})
}

// regionOf returns the screen rectangle to capture for scope: its own frame,
// or the frame of its first framed child (the front window of an
// application).
func regionOf(scope *ax.Element) ([4]int, bool) {
	if f, ok := scope.Frame(); ok {
		return f.Bounds(), true
	}
	for _, c := range scope.Children() {
		if f, ok := c.Frame(); ok {
			return f.Bounds(), true
		}
	}
	return [4]int{}, false
}
