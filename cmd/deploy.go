package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/airlift-sh/airlift/config"
	"github.com/airlift-sh/airlift/deployer"
	"github.com/airlift-sh/airlift/platform"
)

var (
	app        string
	token      string
	srcDir     string
	force      bool
	gitVersion bool
	appOnly    bool
	configOnly bool
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy the application and reconcile its config vars",
	Long: `
Deploy the application and reconcile its config vars:

1. checks platform health (skipped with --force)
2. bundles the source directory and uploads it
3. triggers a remote build, streaming its output to the console
4. verifies the build succeeded
5. pushes the minimal config var delta

--app-only deploys the application without touching config vars;
--config-only reconciles config vars without deploying.
	`,
	Example:      `airlift deploy --app my-app --src-dir . --git-version`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		client, err := platform.NewClient(cfg.APIURL, cfg.StatusURL, cfg.Token)
		if err != nil {
			return err
		}
		d := deployer.New(cfg, client, os.Stdout)

		ctx := context.Background()
		switch {
		case appOnly:
			return d.DeployApp(ctx)
		case configOnly:
			return d.DeployConfig(ctx)
		default:
			return d.Deploy(ctx)
		}
	},
}

func init() {
	rootCmd.AddCommand(deployCmd)

	deployCmd.Flags().StringVar(&app, "app", "", "Application name")
	deployCmd.Flags().StringVar(&token, "token", "", "Platform API token")
	deployCmd.Flags().StringVar(&srcDir, "src-dir", "", "Source directory to deploy")
	deployCmd.Flags().BoolVar(&force, "force", false, "Skip the platform status check")
	deployCmd.Flags().BoolVar(&gitVersion, "git-version", false, "Use the source directory's HEAD commit as the build version")
	deployCmd.Flags().BoolVar(&appOnly, "app-only", false, "Deploy the application only")
	deployCmd.Flags().BoolVar(&configOnly, "config-only", false, "Reconcile config vars only")
	deployCmd.MarkFlagsMutuallyExclusive("app-only", "config-only")

	viper.BindPFlag("app", deployCmd.Flags().Lookup("app"))
	viper.BindPFlag("token", deployCmd.Flags().Lookup("token"))
	viper.BindPFlag("src_dir", deployCmd.Flags().Lookup("src-dir"))
	viper.BindPFlag("force", deployCmd.Flags().Lookup("force"))
	viper.BindPFlag("git_version", deployCmd.Flags().Lookup("git-version"))
}
