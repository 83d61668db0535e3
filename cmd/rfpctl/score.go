package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"alfredoptarigan/rfp-evaluator/internal/config"
	"alfredoptarigan/rfp-evaluator/internal/scoring"
)

type scoreOptions struct {
	capabilityFile string
	metadataFile   string
	keywords       []string
	budget         int64
	timelineWeeks  int64
	teamSize       int64
}

// scoreOutput is printed by the score command.
type scoreOutput struct {
	Attributes scoring.Attributes `json:"attributes"`
	Result     scoring.Result     `json:"result"`
}

func newScoreCmd() *cobra.Command {
	opts := &scoreOptions{}

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score RFP attributes against a capability file without touching the database",
		Long: `Score resolves the RFP attributes the same way the service does: explicit
--budget, --timeline-weeks and --team-size values win over the metadata file,
which holds the JSON object produced by the metadata extractor.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := runScore(cmd, opts)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVarP(&opts.capabilityFile, "capability", "c", "", "capability profile file (yaml, json, toml)")
	cmd.Flags().StringVarP(&opts.metadataFile, "metadata", "m", "", "extracted metadata JSON file")
	cmd.Flags().StringSliceVarP(&opts.keywords, "keywords", "k", nil, "RFP keywords, comma separated")
	cmd.Flags().Int64Var(&opts.budget, "budget", 0, "RFP budget in INR")
	cmd.Flags().Int64Var(&opts.timelineWeeks, "timeline-weeks", 0, "RFP timeline in weeks")
	cmd.Flags().Int64Var(&opts.teamSize, "team-size", 0, "required team size")
	_ = cmd.MarkFlagRequired("capability")

	return cmd
}

func runScore(cmd *cobra.Command, opts *scoreOptions) (*scoreOutput, error) {
	capability, err := config.LoadCapabilityFile(opts.capabilityFile)
	if err != nil {
		return nil, err
	}

	policy := config.Load().Scoring
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring policy: %w", err)
	}

	var metadata scoring.Metadata
	if opts.metadataFile != "" {
		payload, err := readMetadataFile(opts.metadataFile)
		if err != nil {
			return nil, err
		}
		metadata = scoring.DecodeMetadata(payload)
	}

	var canonical scoring.Canonical
	if cmd.Flags().Changed("budget") {
		canonical.Budget = &opts.budget
	}
	if cmd.Flags().Changed("timeline-weeks") {
		canonical.TimelineWeeks = &opts.timelineWeeks
	}
	if cmd.Flags().Changed("team-size") {
		canonical.TeamSize = &opts.teamSize
	}

	attrs := scoring.ResolveAttributes(canonical, metadata, opts.keywords)

	return &scoreOutput{
		Attributes: attrs,
		Result:     scoring.Evaluate(attrs, capability.Profile(), policy),
	}, nil
}

func readMetadataFile(path string) (map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening metadata file: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding metadata file %q: %w", path, err)
	}
	return payload, nil
}
