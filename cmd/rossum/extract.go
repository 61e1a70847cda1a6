package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	rossum "github.com/dangell7/rossum-go"
)

var (
	outputPath string
	localeHint string
	filterName string
	noTables   bool
	xlsxPath   string
)

var extractCmd = &cobra.Command{
	Use:   "extract DOCUMENT_PATH",
	Short: "Extract a document and print a summary of its fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&outputPath, "output", "o", "", "path of output JSON (defaults to DOCUMENT_PATH + .json)")
	extractCmd.Flags().StringVarP(&localeHint, "locale", "l", "", "locale hint, e.g. en_US")
	extractCmd.Flags().StringVarP(&filterName, "filter", "f", string(rossum.FilterBest), "field filter: best or all")
	extractCmd.Flags().BoolVar(&noTables, "no-tables", false, "disable table extraction")
	extractCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also export the result as an XLSX workbook")
}

func runExtract(cmd *cobra.Command, args []string) error {
	documentPath := args[0]
	out := outputPath
	if out == "" {
		out = documentPath + ".json"
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	client, err := rossum.NewClient(
		rossum.WithAPIKey(viper.GetString("api_key")),
		rossum.WithBaseURL(viper.GetString("api_url")),
		rossum.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	fmt.Println("Extracting document:", documentPath)
	fmt.Print("Processing document: ")
	observer := func(attempt uint, status rossum.Status) {
		switch status {
		case rossum.StatusReady:
			fmt.Println(" Done.")
		case rossum.StatusError:
			fmt.Println(" Error.")
		default:
			fmt.Print(".")
		}
	}

	opts := []rossum.ExtractOption{
		rossum.WithFilter(rossum.Filter(filterName)),
		rossum.WithTables(!noTables),
		rossum.WithOutputFile(out),
		rossum.WithDeduplication(),
		rossum.WithObserver(observer),
	}
	if localeHint != "" {
		opts = append(opts, rossum.WithLocale(localeHint))
	}

	result, err := client.Extract(cmd.Context(), rossum.NewFileDocument(documentPath), opts...)
	if err != nil {
		fmt.Println()
		return err
	}

	summary, err := rossum.Summary(result)
	if err != nil {
		return err
	}
	fmt.Print(summary)
	fmt.Println("Web preview:", result.Preview)
	fmt.Println("Extracted to:", out)

	if xlsxPath != "" {
		if err := rossum.ExportXLSX(result, xlsxPath); err != nil {
			return err
		}
		fmt.Println("Exported to:", xlsxPath)
	}
	return nil
}
