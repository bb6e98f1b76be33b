package bundle

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pawalert/pawalert/internal/ssr"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "bundle",
	Title: "Bundler",
}

func init() {
	CustomElements.Flags().String("dir", "./ui/templates", "directory containing the gohtml templates")
}

// CustomElements rewrites the gohtml templates in place, expanding the custom
// element shorthands into plain HTML with the shared classes applied.
var CustomElements = &cobra.Command{
	Use:     "custom-elements",
	GroupID: "bundle",
	Short:   "Expand custom elements",
	Long:    "Expands custom element shorthands in the gohtml templates",
	Run: func(cmd *cobra.Command, _ []string) {
		dir, err := cmd.Flags().GetString("dir")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "invalid dir flag: %v\n", err)
			return
		}
		err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".gohtml") {
				return nil
			}
			in, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read template: %w", err)
			}
			var out bytes.Buffer
			if err = ssr.ReplaceCustomElements(&out, bytes.NewReader(in)); err != nil {
				return fmt.Errorf("replace custom elements: %w", err)
			}
			if err = os.WriteFile(path, out.Bytes(), 0o644); err != nil { //nolint:gosec,mnd // templates are world-readable
				return fmt.Errorf("write template: %w", err)
			}
			fmt.Printf("expanded %s\n", path)
			return nil
		})
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Bundler error: %v\n", err)
			return
		}
	},
}
