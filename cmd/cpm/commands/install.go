package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/cpm/internal/app"
	"go.trai.ch/cpm/internal/core/domain"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install <package>",
		Short: "Install a package and its dependencies",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return domain.ErrNoPackageSpecified
			}
			force, _ := cmd.Flags().GetBool("force")

			return c.app.Install(cmd.Context(), args[0], app.InstallOptions{
				Force: force,
			})
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Rebuild even if the same version is already installed")
	return cmd
}
