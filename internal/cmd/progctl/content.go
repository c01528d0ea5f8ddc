package progctl

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/verdantworks/growline/internal/content"
)

func newContentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect and validate content packs",
	}
	cmd.AddCommand(newContentValidateCommand())
	return cmd
}

func newContentValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a content pack document without installing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read pack file: %w", err)
			}

			pack, err := content.Parse(raw)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			if err := pack.Validate(); err != nil {
				return fmt.Errorf("validate %s: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"%s is valid: %d skills, %d synergies, %d research projects, %d achievements, %d objectives, %d phases, %d boards\n",
				args[0], len(pack.SkillNodes), len(pack.Synergies), len(pack.ResearchProjects),
				len(pack.Achievements), len(pack.ObjectiveTemplates), len(pack.Campaign.Phases), len(pack.Boards))
			return nil
		},
	}
}
