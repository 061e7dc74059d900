package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/ssegen/pkg/generate"
	"github.com/agentstation/ssegen/pkg/logging"
)

// generateCmd runs the document-to-code pipeline once.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate TypeScript streaming-client functions from an OpenAPI document",
	Long: `Generate reads an annotated OpenAPI document, selects every operation
carrying the x-event-source marker, and writes a single TypeScript file with
one streaming-client function per endpoint plus a shared typed helper.

Recognized configuration keys (flags, environment, or .ssegen.yaml):
  openApiSpecPath   source document location
  outputPath        destination file location
  baseUrlImport     module path of the baseUrl symbol
  clientImport      module path of the generated event types

Examples:
  ssegen generate --spec api.json --output src/api/streams.ts
  ssegen generate --spec api.yaml --output streams.ts --client-import @app/api-types`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("spec", "", "path to the OpenAPI document")
	generateCmd.Flags().String("output", "", "path of the generated TypeScript file")
	generateCmd.Flags().String("base-url-import", generate.DefaultBaseURLImport, "module path the baseUrl symbol is imported from")
	generateCmd.Flags().String("client-import", generate.DefaultClientImport, "module path event types are imported from")

	cobra.CheckErr(viper.BindPFlag("openApiSpecPath", generateCmd.Flags().Lookup("spec")))
	cobra.CheckErr(viper.BindPFlag("outputPath", generateCmd.Flags().Lookup("output")))
	cobra.CheckErr(viper.BindPFlag("baseUrlImport", generateCmd.Flags().Lookup("base-url-import")))
	cobra.CheckErr(viper.BindPFlag("clientImport", generateCmd.Flags().Lookup("client-import")))
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	specPath := viper.GetString("openApiSpecPath")
	outputPath := viper.GetString("outputPath")
	if specPath == "" {
		return fmt.Errorf("no OpenAPI document given: set --spec or openApiSpecPath")
	}
	if outputPath == "" {
		return fmt.Errorf("no output file given: set --output or outputPath")
	}

	generator := generate.New(
		generate.WithSpecPath(specPath),
		generate.WithOutputPath(outputPath),
		generate.WithBaseURLImport(viper.GetString("baseUrlImport")),
		generate.WithClientImport(viper.GetString("clientImport")),
		generate.WithLogger(logging.Default()),
	)

	if err := generator.Run(cmd.Context()); err != nil {
		logging.Err(err).Str("spec", specPath).Msg("Generation failed")
		return err
	}
	return nil
}
