package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/tui"
	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/pkg/flashbooth"
)

var captionFlags struct {
	photos int
}

var imageFlags struct {
	aspectRatio string
	output      string
}

var captionCmd = &cobra.Command{
	Use:   "caption",
	Short: "Generate a caption for a photo strip",
	Long: `Generate a short, witty caption for a photo booth strip.

The photo count defaults to booth.photo_count from flashbooth.yaml.`,
	Example: `  flashbooth caption
  flashbooth caption --photos 4`,
	Args: cobra.NoArgs,
	RunE: runCaption,
}

var vibeCmd = &cobra.Command{
	Use:   "vibe <photo>",
	Short: "Describe the mood of a photo",
	Long: `Analyze the mood and vibe of a photo, fortune-teller style.

<photo> is an image file or an image data URL.`,
	Args:              RequirePhoto,
	ValidArgsFunction: completeImageFiles,
	RunE:              runVibe,
}

var imageCmd = &cobra.Command{
	Use:   "image <prompt>",
	Short: "Generate a creative image",
	Long: `Generate an image from a text prompt at a supported aspect ratio.

Supported aspect ratios: 1:1, 2:3, 3:2, 3:4, 4:3, 9:16, 16:9, 21:9.
Without --output the image is printed to stdout as a data URL.`,
	Example: `  flashbooth image "retro disco background" --aspect-ratio 9:16 -o bg.png`,
	Args:    RequirePrompt,
	RunE:    runImage,
}

func init() {
	rootCmd.AddCommand(captionCmd, vibeCmd, imageCmd)

	captionCmd.Flags().IntVarP(&captionFlags.photos, "photos", "n", 0, "Number of photos in the strip (default: booth.photo_count)")

	imageCmd.Flags().StringVarP(&imageFlags.aspectRatio, "aspect-ratio", "a", string(flashbooth.AspectSquare), "Aspect ratio of the generated image")
	imageCmd.Flags().StringVarP(&imageFlags.output, "output", "o", "", "Write the image to this file instead of stdout")
	_ = imageCmd.RegisterFlagCompletionFunc("aspect-ratio", completeAspectRatios)
}

func runCaption(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	photos := cfg.Booth.PhotoCount
	if cmd.Flags().Changed("photos") {
		photos = captionFlags.photos
	}

	enhancer, err := newEnhancer(cfg, newLogger(cmd))
	if err != nil {
		return err
	}

	caption, err := tui.RunWithSpinner(cmd.Context(), "Writing a caption", func(ctx context.Context) (string, error) {
		return enhancer.GenerateCaption(ctx, photos)
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), caption)
	return nil
}

func runVibe(cmd *cobra.Command, args []string) error {
	photo, err := photoDataURL(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	enhancer, err := newEnhancer(cfg, newLogger(cmd))
	if err != nil {
		return err
	}

	vibe, err := tui.RunWithSpinner(cmd.Context(), "Reading the vibe", func(ctx context.Context) (string, error) {
		return enhancer.AnalyzeVibe(ctx, photo)
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), vibe)
	return nil
}

func runImage(cmd *cobra.Command, args []string) error {
	prompt := strings.Join(args, " ")
	ratio, err := flashbooth.ParseAspectRatio(imageFlags.aspectRatio)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	enhancer, err := newEnhancer(cfg, newLogger(cmd))
	if err != nil {
		return err
	}

	img, err := tui.RunWithSpinner(cmd.Context(), "Generating image", func(ctx context.Context) (*flashbooth.Image, error) {
		return enhancer.GenerateImage(ctx, prompt, ratio)
	})
	if err != nil {
		return err
	}
	if img == nil {
		tui.Show(cmd.ErrOrStderr(), tui.Warning("The model returned no image for this prompt"))
		return nil
	}

	if imageFlags.output == "" {
		fmt.Fprintln(cmd.OutOrStdout(), img.DataURL())
		return nil
	}
	if err := os.WriteFile(imageFlags.output, img.Data, 0644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	tui.Show(cmd.ErrOrStderr(), tui.Success("Image written to "+imageFlags.output))
	return nil
}
