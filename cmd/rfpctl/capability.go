package main

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/rfp-evaluator/internal/config"
	"alfredoptarigan/rfp-evaluator/internal/models"
	"alfredoptarigan/rfp-evaluator/internal/repositories"
)

var errImportCancelled = errors.New("capability import cancelled")

func newCapabilityCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capability",
		Short: "Manage the company capability profile",
	}

	cmd.AddCommand(newCapabilityShowCmd(c), newCapabilityImportCmd(c))
	return cmd
}

func newCapabilityShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored capability profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			core, _, err := c.core()
			if err != nil {
				return err
			}
			defer core.Close()

			capability, err := core.Capabilities.Load()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), capability)
		},
	}
}

func newCapabilityImportCmd(c *cli) *cobra.Command {
	var (
		file string
		yes  bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Validate a capability file and store it, queueing every document for re-evaluation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			capability, err := config.LoadCapabilityFile(file)
			if err != nil {
				return err
			}

			core, log, err := c.core()
			if err != nil {
				return err
			}
			defer core.Close()

			existing, err := core.Capabilities.Load()
			switch {
			case err == nil:
				if !yes {
					if err := confirmReplace(existing, capability); err != nil {
						return err
					}
				}
			case errors.Is(err, repositories.ErrCapabilityNotConfigured):
			default:
				// Ambiguous or invalid rows are replaced as well, but never silently.
				log.Warn("stored capability profile is unusable", zap.Error(err))
				if !yes {
					if err := confirmReplace(nil, capability); err != nil {
						return err
					}
				}
			}

			var (
				saved  *models.CompanyCapability
				queued int64
			)
			err = core.Transactor.WithinTransaction(cmd.Context(), func(repos repositories.TxRepositories) error {
				var err error
				if saved, err = repos.Capabilities.Save(capability); err != nil {
					return err
				}
				queued, err = repos.Documents.MarkAllUnprocessed()
				return err
			})
			if err != nil {
				return err
			}

			log.Info("capability imported",
				zap.String("file", file),
				zap.Strings("tech_keywords", saved.TechKeywords),
				zap.Int64("documents_queued", queued),
			)
			return printJSON(cmd.OutOrStdout(), saved)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "capability profile file (yaml, json, toml)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation before replacing the stored profile")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func confirmReplace(existing, incoming *models.CompanyCapability) error {
	label := "Replace the stored capability profile"
	if existing != nil {
		label = fmt.Sprintf("Replace profile (budget %d-%d, %d keywords) with (budget %d-%d, %d keywords)",
			existing.MinBudget, existing.MaxBudget, len(existing.TechKeywords),
			incoming.MinBudget, incoming.MaxBudget, len(incoming.TechKeywords),
		)
	}

	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
			return errImportCancelled
		}
		return fmt.Errorf("confirmation prompt: %w", err)
	}
	return nil
}
