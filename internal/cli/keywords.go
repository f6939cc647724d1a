package cli

import (
	"context"
	"encoding/json"

	"cvoptimizer/internal/common"
	"cvoptimizer/internal/keywords"
	"cvoptimizer/internal/scrape"

	"github.com/spf13/cobra"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Compare the keywords of a CV and a job posting",
	Long: `Extract the most frequent keywords of a CV and a job posting and list
which job keywords the CV already covers and which are missing.
The CV may be a text, PDF or Word file; the job posting a file or a URL.`,
	RunE: runKeywords,
}

var (
	keywordsSources common.InputSources
	keywordsTopN    int
)

func init() {
	addInputFlags(keywordsCmd, &keywordsSources)
	keywordsCmd.Flags().IntVar(&keywordsTopN, "top", keywords.DefaultTopN, "Number of keywords to extract per text")
}

// addInputFlags registers the --cv, --job and --job-url flags
func addInputFlags(cmd *cobra.Command, sources *common.InputSources) {
	cmd.Flags().StringVar(&sources.CVFile, "cv", "", "CV file (.txt, .md, .pdf, .docx)")
	cmd.Flags().StringVar(&sources.JobFile, "job", "", "Job posting file")
	cmd.Flags().StringVar(&sources.JobURL, "job-url", "", "Job posting URL to fetch")
	cmd.MarkFlagsMutuallyExclusive("job", "job-url")
}

func runKeywords(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := getConfigFromContext(ctx)
	logger := getLoggerFromContext(ctx)

	compare := func(_ context.Context, in common.Inputs) (keywords.Comparison, error) {
		return keywords.Compare(in.Job, in.CV, keywordsTopN), nil
	}

	output := func(result keywords.Comparison) error {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	return common.RunCommand(ctx, logger, scrape.New(cfg.Scrape), keywordsSources, compare, output)
}
