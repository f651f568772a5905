package main

import (
	"github.com/spf13/cobra"

	"github.com/SAP-F-2025/coursework-service/internal/itemanalysis"
)

type analysisFixture struct {
	Items       []itemanalysis.ItemMeta `json:"items" yaml:"items"`
	Respondents []fixtureRespondent     `json:"respondents" yaml:"respondents" validate:"required,dive"`
}

type fixtureRespondent struct {
	ID        string                         `json:"id" yaml:"id" validate:"required"`
	Total     float64                        `json:"total" yaml:"total"`
	Tercile   string                         `json:"tercile" yaml:"tercile" validate:"omitempty,tercile"`
	Responses map[uint]itemanalysis.Response `json:"responses" yaml:"responses"`
}

func newItemAnalysisCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "item-analysis",
		Short: "Compute item statistics for fixture responses and print the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			var fx analysisFixture
			if err := loadFixture(file, &fx); err != nil {
				return err
			}

			respondents := make([]itemanalysis.Respondent, len(fx.Respondents))
			for i, r := range fx.Respondents {
				respondents[i] = itemanalysis.Respondent{
					ID:        r.ID,
					Total:     r.Total,
					Tercile:   itemanalysis.Tercile(r.Tercile),
					Responses: r.Responses,
				}
			}

			return printJSON(cmd.OutOrStdout(), itemanalysis.Analyze(respondents, fx.Items))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "fixture file (YAML or JSON)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
