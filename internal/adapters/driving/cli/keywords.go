package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hedwig/internal/adapters/driven/config/file"
)

var keywordsFile string

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "List the keyword groups and patterns",
	Long: `Prints the keyword table a monitor run would use, in table order.
Without --keywords the built-in table is shown.`,
	Args: cobra.NoArgs,
	RunE: runKeywords,
}

func init() {
	keywordsCmd.Flags().StringVarP(&keywordsFile, "keywords", "k", "", "keyword table (.toml or .json)")
	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(cmd *cobra.Command, _ []string) error {
	table, err := file.LoadKeywords(keywordsFile)
	if err != nil {
		return err
	}

	width := 0
	for _, g := range table.Groups {
		width = max(width, len(g.Name))
	}

	for _, g := range table.Groups {
		exprs := make([]string, 0, len(g.Patterns))
		for _, p := range g.Patterns {
			exprs = append(exprs, p.Expr)
		}
		cmd.Printf("%-*s  %s\n", width, g.Name, strings.Join(exprs, ", "))
	}
	cmd.Printf("%d groups\n", len(table.Groups))
	return nil
}
