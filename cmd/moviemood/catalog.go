package main

import (
	"github.com/spf13/cobra"

	service "github.com/okian/moviemood/internal/app"
)

func newRulesCmd(_ *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the scoring rules in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := service.New().RuleNames(cmd.Context())
			return writeJSON(cmd.OutOrStdout(), struct {
				Count int      `json:"count"`
				Rules []string `json:"rules"`
			}{Count: len(names), Rules: names})
		},
	}
}

func newOptionsCmd(_ *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Print the legal preference values offered to clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeJSON(cmd.OutOrStdout(), service.New().Options(cmd.Context()))
		},
	}
}
