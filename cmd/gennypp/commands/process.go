package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"cursey/gennypp/internal/preprocessor"
)

var (
	processInput  string
	processOutput string
	processKeep   bool
)

var processCmd = &cobra.Command{
	Use:   "process [file]",
	Short: "Process the import tree rooted at a file",
	Long: `Process rewrites the file and everything reachable through its
import directives, writing the template-free copies under a temporary
directory.

Examples:
  gennypp process types.genny              # Report the processed paths
  gennypp process -i types.genny -o out/   # Copy the processed tree to out/
  gennypp process types.genny --keep       # Leave the temp tree in place`,
	Args: cobra.MaximumNArgs(1),
	Run:  runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&processInput, "input", "i", "", "Path to the root file")
	processCmd.Flags().StringVarP(&processOutput, "output", "o", "", "Directory to copy the processed tree into")
	processCmd.Flags().BoolVar(&processKeep, "keep", false, "Keep the temporary directory")
}

func runProcess(cmd *cobra.Command, args []string) {
	inputPath := processInput
	if inputPath == "" && len(args) > 0 {
		inputPath = args[0]
	}

	if inputPath == "" {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		fmt.Fprintln(os.Stderr, "Usage: gennypp process [file] or gennypp -i file")
		os.Exit(1)
	}

	pp := preprocessor.New()

	result, err := pp.ProcessTree(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if result == nil {
		fmt.Println("No generic declarations found; nothing to do.")
		return
	}

	if !processKeep && processOutput == "" {
		defer pp.Cleanup(result)
	}

	originals := make([]string, 0, len(result.OriginalToProcessed))
	for original := range result.OriginalToProcessed {
		originals = append(originals, original)
	}
	sort.Strings(originals)

	fmt.Printf("Processed %d file(s):\n", len(originals))
	for _, original := range originals {
		processed, _ := result.ProcessedPath(original)
		fmt.Printf("  %s -> %s\n", original, processed)
	}

	if processOutput != "" {
		if err := copyTree(result.TempDirectory, processOutput); err != nil {
			fmt.Fprintf(os.Stderr, "Error: copying processed tree: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Copied processed tree to %s\n", processOutput)

		if !processKeep {
			pp.Cleanup(result)
		}
	}

	if processKeep {
		fmt.Printf("Processed tree kept at %s\n", result.TempDirectory)
	}
}

// copyTree copies every regular file under src into dst, preserving
// relative paths.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relative, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		target := filepath.Join(dst, relative)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		return os.WriteFile(target, content, 0o644)
	})
}
