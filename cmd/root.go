package cmd

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oakmund/dirtrail/config"
	"github.com/oakmund/dirtrail/logger"
)

var (
	cfgFile string
	log     *logger.Logger
	err     error
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dirtrail",
	Short: "Directory traversal log generator",
	Long: `Walks a directory tree, writes a traversal report with host metadata,
emails the report to a recipient, and moves the local copy to the trash.`,
	SilenceUsage: true,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration for dirtrail",
	Long:  `View or modify the configuration for dirtrail.`,
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "View current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Current configuration:")
		fmt.Printf("Report name: %s\n", viper.GetString("report_name"))
		fmt.Printf("Data directory: %s\n", viper.GetString("data_dir"))
		fmt.Printf("Skip unreadable: %t\n", viper.GetBool("skip_unreadable"))
		fmt.Printf("SMTP relay: %s:%d\n", viper.GetString("smtp.host"), viper.GetInt("smtp.port"))
		fmt.Printf("SMTP from: %s\n", viper.GetString("smtp.from"))
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]
		value := args[1]
		viper.Set(key, value)
		err := viper.WriteConfig()
		if err != nil {
			log.Error("Error writing config: " + err.Error())
		}
		log.Info(fmt.Sprintf("Set %s to %s", key, value))
	},
}

func buildLogger() {
	logCfg := logger.Config{
		LogLevel:    "info",
		DevMode:     true,
		ServiceName: "dirtrail",
	}
	log, err = logger.NewLogger(logCfg)
	if err != nil {
		panic(fmt.Errorf("failed to create logger: %v", err))
	}
}

func initConfig() {
	config.Init(cfgFile, validator.New(), log)
}

func init() {
	cobra.OnInitialize(buildLogger, initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configViewCmd)
	configCmd.AddCommand(configSetCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
