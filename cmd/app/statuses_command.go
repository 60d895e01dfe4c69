package main

import (
	"errors"
	"fmt"
	"strconv"

	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/domain/model/component"
	"tracker/internal/core/domain/model/status"

	"github.com/spf13/cobra"
)

func newStatusesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "statuses [treatment...]",
		Short: "Print the statuses allowed for a treatment list, in display order",
		RunE: func(command *cobra.Command, args []string) error {
			treatments := commands.NormalizeTreatments(args)
			var problems []error
			for _, name := range treatments {
				problems = append(problems, status.ValidateTreatmentName(name))
			}
			if err := errors.Join(problems...); err != nil {
				return err
			}

			allowed := component.AllowedStatuses(treatments)
			status.Sort(allowed)

			rows := make([][]string, 0, len(allowed))
			for _, s := range allowed {
				document := ""
				if component.RequiresDocument(s) {
					document = "yes"
				}
				rows = append(rows, []string{s.Code(), s.Label(), strconv.Itoa(s.Rank()), document})
			}

			fmt.Fprintln(command.OutOrStdout(), renderTable(
				[]string{"Code", "Label", "Rank", "Document"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
}
