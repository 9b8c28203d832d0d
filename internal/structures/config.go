package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level      string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode       uint32 `yaml:"mode" validate:"required|uint"`
	Dir        string `yaml:"dir" validate:"required|unixPath"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
}

type StreakConfig struct {
	CutoffHourUTC int `yaml:"cutoffHourUTC" validate:"int|min:0|max:23"`
}

// StoreConfig configures the server-side counter database.
type StoreConfig struct {
	DatabasePath string `yaml:"databasePath" validate:"required"`
}

// LedgerConfig configures the client-side local ledger document.
type LedgerConfig struct {
	FilePath string        `yaml:"filePath"`
	Compress bool          `yaml:"compress"`
	MaxRows  int           `yaml:"maxRows" validate:"int|min:0"`
	RowTTL   time.Duration `yaml:"rowTTL"`
}

// RemoteConfig configures the client of the remote counter service. An empty
// BaseURL means the remote is not configured.
type RemoteConfig struct {
	BaseURL string        `yaml:"baseURL"`
	Timeout time.Duration `yaml:"timeout"`
}

type AdminConfig struct {
	Wallet string `yaml:"wallet"`
}

type CorsConfig struct {
	AllowedOrigin string `yaml:"allowedOrigin"`
}

type RateLimitConfig struct {
	RPS   int `yaml:"rps" validate:"int|min:0"`
	Burst int `yaml:"burst" validate:"int|min:0"`
}

type SnapshotConfig struct {
	FilePath string        `yaml:"filePath"`
	Interval time.Duration `yaml:"interval"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled         bool          `yaml:"enabled"`
	RefreshInterval time.Duration `yaml:"refreshInterval"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server          `yaml:"webServer"`
	Logger    LoggerConfig    `yaml:"logger"`
	Streak    StreakConfig    `yaml:"streak"`
	Store     StoreConfig     `yaml:"store"`
	Ledger    LedgerConfig    `yaml:"ledger"`
	Remote    RemoteConfig    `yaml:"remote"`
	Admin     AdminConfig     `yaml:"admin"`
	Cors      CorsConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
	Cache     CacheConfig     `yaml:"cache"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}
