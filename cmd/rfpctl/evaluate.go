package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/rfp-evaluator/internal/logger"
	"alfredoptarigan/rfp-evaluator/internal/models"
)

func newEvaluateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate DOCUMENT_ID",
		Short: "Evaluate a stored document against the current capability profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid document id %q: %w", args[0], err)
			}

			core, log, err := c.core()
			if err != nil {
				return err
			}
			defer core.Close()

			evaluation, err := core.Evaluator.EvaluateAndSave(cmd.Context(), id)
			if err != nil {
				return err
			}

			log.Debug("evaluation stored",
				zap.String(logger.FieldDocumentID, id.String()),
				zap.String(logger.FieldDecision, string(evaluation.Decision)),
			)

			return printJSON(cmd.OutOrStdout(), struct {
				DocumentID string                 `json:"document_id"`
				Evaluation *models.EvaluationData `json:"evaluation"`
			}{
				DocumentID: id.String(),
				Evaluation: models.NewEvaluationData(evaluation),
			})
		},
	}
}
