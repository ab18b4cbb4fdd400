package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rinchamnan16/younan24/internal/catalog"
	"github.com/rinchamnan16/younan24/internal/config"
	"github.com/rinchamnan16/younan24/internal/constants"
	"github.com/rinchamnan16/younan24/internal/generate"
	"github.com/rinchamnan16/younan24/internal/media"
)

var retouchCmd = &cobra.Command{
	Use:   "retouch [directory]",
	Short: "Batch-retouch every portrait in a directory",
	Long: `Retouch runs the studio edit pipeline over a directory of portraits.
The instruction is composed from the preset flags the same way the editor
composes it, and each result is written next to its original.`,
	Args: cobra.ExactArgs(1),
	RunE: runRetouch,
}

func init() {
	rootCmd.AddCommand(retouchCmd)

	retouchCmd.Flags().String("background", catalog.DefaultBackgroundID, "Background preset id")
	retouchCmd.Flags().String("uniform", "", "Office uniform preset id")
	retouchCmd.Flags().String("state-uniform", "", "State uniform preset id (overrides --uniform)")
	retouchCmd.Flags().Int("concurrency", constants.DefaultRetouchConcurrency, "Parallel generation requests")
	retouchCmd.Flags().Bool("dry-run", false, "List the files and the composed instruction without calling the API")
}

// retouchPrompt composes the instruction from the preset flags, enforcing
// the same clothing exclusivity the editor does.
func retouchPrompt(cmd *cobra.Command) (string, error) {
	backgroundID := mustGetString(cmd, "background")
	uniformID := mustGetString(cmd, "uniform")
	stateUniformID := mustGetString(cmd, "state-uniform")

	if _, ok := catalog.Background(backgroundID); !ok {
		return "", fmt.Errorf("unknown background %q", backgroundID)
	}

	var clothing catalog.ClothingSelection
	switch {
	case stateUniformID != "":
		if _, ok := catalog.StateUniform(stateUniformID); !ok {
			return "", fmt.Errorf("unknown state uniform %q", stateUniformID)
		}
		clothing = catalog.SelectStateUniform(stateUniformID)
	case uniformID != "":
		if _, ok := catalog.Uniform(uniformID); !ok {
			return "", fmt.Errorf("unknown uniform %q", uniformID)
		}
		clothing = catalog.SelectUniform(uniformID)
	}

	prompt := catalog.ComposePrompt(backgroundID, clothing)
	if prompt == "" {
		return "", fmt.Errorf("the selected presets compose an empty instruction")
	}
	return prompt, nil
}

// listPortraits returns the image files directly inside dir.
func listPortraits(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg", ".png", ".webp", ".bmp":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// resultPath places the retouched file next to the original, with the
// extension matching what the model returned.
func resultPath(original, mimeType string) string {
	ext := ".jpg"
	if mimeType == "image/png" {
		ext = ".png"
	}
	base := strings.TrimSuffix(original, filepath.Ext(original))
	return base + "-retouched" + ext
}

func runRetouch(cmd *cobra.Command, args []string) error {
	prompt, err := retouchPrompt(cmd)
	if err != nil {
		return err
	}

	files, err := listPortraits(args[0])
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no image files found in %s", args[0])
	}

	if mustGetBool(cmd, "dry-run") {
		fmt.Printf("Instruction: %s\n", prompt)
		fmt.Printf("Would retouch %d files:\n", len(files))
		for _, f := range files {
			fmt.Printf("  %s\n", f)
		}
		return nil
	}

	cfg := config.Load()
	logger := newServeLogger()
	provider, _, err := buildProvider(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	fmt.Printf("Retouching %d portraits with %s\n", len(files), provider.Name())
	bar := progressbar.Default(int64(len(files)))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(mustGetInt(cmd, "concurrency"))

	for _, file := range files {
		g.Go(func() error {
			defer bar.Add(1) //nolint:errcheck

			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("reading %s: %w", file, err)
			}
			up, err := media.Ingest(filepath.Base(file), mimeTypeFor(file), data)
			if err != nil {
				return fmt.Errorf("validating %s: %w", file, err)
			}

			res, err := provider.EditImage(ctx, generate.EditRequest{
				Image:  generate.Payload{MIMEType: up.MIMEType, Data: up.Data},
				Prompt: prompt,
			})
			if err != nil {
				return fmt.Errorf("retouching %s: %w", file, err)
			}

			out := resultPath(file, res.MIMEType)
			if err := os.WriteFile(out, res.Data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Println("Done")
	return nil
}

// mimeTypeFor maps a filename extension to the MIME type the validator and
// the model expect.
func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".bmp":
		return "image/bmp"
	default:
		return "image/jpeg"
	}
}
