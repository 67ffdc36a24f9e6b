package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort    int           `mapstructure:"http_port"`
	LogLevel    string        `mapstructure:"log_level"`
	DatabaseURL string        `mapstructure:"database_url"`
	SessionTTL  time.Duration `mapstructure:"session_ttl"`
	StaticDir   string        `mapstructure:"static_dir"`
}

var AppConfig Config

func InitConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variable overrides
	viper.SetEnvPrefix("BLOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("http_port", 3000)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("database_url", "root:password123@tcp(localhost:3306)/example_db?charset=utf8mb4&parseTime=True&loc=Local")
	viper.SetDefault("session_ttl", "24h")
	viper.SetDefault("static_dir", "./public")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Println("Config file not found, using defaults and environment variables.")
		} else {
			panic(fmt.Errorf("fatal error reading config file: %w", err))
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		panic(fmt.Errorf("unable to decode config into struct: %w", err))
	}
}
