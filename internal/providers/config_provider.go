package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"tarotstats/internal/streak"
	"tarotstats/internal/structures"
	"time"

	"github.com/spf13/viper"
)

const AppName = "TarotStats"

// NewConfigProvider loads the YAML file at flags.ConfigPath over the defaults.
// An empty path runs on defaults and environment overrides only.
func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v)

	v.BindEnv("logger.level", "TAROT_LOG_LEVEL")
	v.BindEnv("admin.wallet", "TAROT_ADMIN_WALLET")
	v.BindEnv("cors.allowedOrigin", "TAROT_ALLOWED_ORIGIN")
	v.BindEnv("remote.baseURL", "TAROT_API_BASE")
	v.BindEnv("store.databasePath", "TAROT_DB_PATH")
	v.BindEnv("ledger.filePath", "TAROT_LEDGER_PATH")

	if flags.ConfigPath != "" {
		filename := filepath.Base(flags.ConfigPath)
		v.AddConfigPath(filepath.Dir(flags.ConfigPath))
		v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	err := v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 8787)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", "./logs")
	v.SetDefault("streak.cutoffHourUTC", streak.DefaultCutoffHourUTC)
	v.SetDefault("store.databasePath", "./data/tarotstats.db")
	v.SetDefault("ledger.filePath", "./data/ledger.json")
	v.SetDefault("ledger.maxRows", 1000)
	v.SetDefault("ledger.rowTTL", 365*24*time.Hour)
	v.SetDefault("remote.timeout", 5*time.Second)
	v.SetDefault("rateLimit.rps", 5)
	v.SetDefault("rateLimit.burst", 10)
	v.SetDefault("snapshot.interval", 10*time.Minute)
	v.SetDefault("cache.ttl", 30*time.Second)
	v.SetDefault("metrics.refreshInterval", 30*time.Second)
}
