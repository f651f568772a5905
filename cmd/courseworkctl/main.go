// Command courseworkctl runs the bucketing and item analysis engines
// against YAML fixtures, without a database.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/SAP-F-2025/coursework-service/internal/validator"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "courseworkctl",
		Short:        "Inspect coursework buckets and item statistics from fixtures",
		SilenceUsage: true,
	}
	root.AddCommand(newBucketsCmd(), newItemAnalysisCmd())
	return root
}

// loadFixture decodes a YAML (or JSON) file into out and validates it
func loadFixture(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read fixture: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}
	if err := validator.New().Validate(out); err != nil {
		return fmt.Errorf("invalid fixture %s: %w", path, err)
	}
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
