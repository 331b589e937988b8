package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/oakmund/dirtrail/logger"
)

type SMTP struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from" validate:"omitempty,email"`
	Subject  string `mapstructure:"subject"`
	Body     string `mapstructure:"body"`
}

type Config struct {
	ConfigPath     string
	ReportName     string `mapstructure:"report_name" validate:"required"`
	DataDir        string `mapstructure:"data_dir" validate:"required"`
	SkipUnreadable bool   `mapstructure:"skip_unreadable"`
	SMTP           SMTP   `mapstructure:"smtp"`
}

var (
	appConfig     Config
	configRWMutex sync.RWMutex
)

func GetConfig() *Config {
	configRWMutex.RLock()
	defer configRWMutex.RUnlock()
	return &appConfig
}

// Init loads configuration from cfgFile when given, otherwise from
// config.yaml on the search paths, then environment variables prefixed
// DIRTRAIL_, then defaults, in that order of precedence. Meant to run from
// cobra.OnInitialize after the logger is built.
func Init(cfgFile string, validate *validator.Validate, log *logger.Logger) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.dirtrail")
		viper.AddConfigPath("/etc/dirtrail")
	}

	viper.SetDefault("report_name", "directory_traversal_log.txt")
	viper.SetDefault("data_dir", defaultDataDir())
	viper.SetDefault("skip_unreadable", false)
	viper.SetDefault("smtp.host", "smtp.gmail.com")
	viper.SetDefault("smtp.port", 587)
	viper.SetDefault("smtp.subject", "Directory log")
	viper.SetDefault("smtp.body", "This is a system generated email, kindly do not reply.")

	viper.SetEnvPrefix("dirtrail")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Warn("No config file found. Using defaults.")
		} else {
			log.Error("Failed to read config file", "error", err)
			os.Exit(1)
		}
	}

	configRWMutex.Lock()
	defer configRWMutex.Unlock()

	if err := viper.Unmarshal(&appConfig); err != nil {
		log.Error("Unable to decode config into struct", "error", err)
		os.Exit(1)
	}

	if err := validate.Struct(&appConfig); err != nil {
		log.Error("Invalid config", "error", err)
		os.Exit(1)
	}

	appConfig.ConfigPath = viper.ConfigFileUsed()
}

// ReportPath is where the run writes its report: the configured file name in
// the current working directory, matching where the user launched the tool.
func (c *Config) ReportPath() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, c.ReportName), nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "dirtrail")
	}
	return filepath.Join(home, ".dirtrail")
}
