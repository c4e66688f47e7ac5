package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces every environment variable read by the App.
const EnvPrefix = "BKSF"

// Config defines the structure of the configuration file.
type Config struct {
	GitCommit               string        `yaml:"git_commit" envconfig:"BKSF_GIT_COMMIT" json:"git_commit"`
	GitTag                  string        `yaml:"git_tag" envconfig:"BKSF_GIT_TAG" json:"git_tag"`
	BuildTime               string        `yaml:"build_time" envconfig:"BKSF_BUILD_TIME" json:"build_time"`
	IsProduction            bool          `yaml:"is_production" envconfig:"BKSF_IS_PRODUCTION" json:"is_production"`
	LogLevel                zapcore.Level `yaml:"log_level" envconfig:"BKSF_LOG_LEVEL" json:"log_level"`
	LogFolder               string        `yaml:"log_folder" envconfig:"BKSF_LOG_FOLDER" json:"log_folder"`
	LogMaxSize              int           `yaml:"log_max_size" envconfig:"BKSF_LOG_MAX_SIZE" json:"log_max_size"` // megabytes
	OpsEndpointsEnable      bool          `yaml:"ops_endpoints_enable" envconfig:"BKSF_OPS_ENDPOINTS_ENABLE" json:"ops_endpoints_enable"`
	ProfilerEndpointsEnable bool          `yaml:"profiler_endpoints_enable" envconfig:"BKSF_PROFILER_ENDPOINTS_ENABLE" json:"profiler_endpoints_enable"`
	Server                  ServerConfig  `yaml:"server" json:"server"`
	Journal                 JournalConfig `yaml:"journal" json:"journal"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"BKSF_SERVER_HOST" json:"host"`
	Port            string        `yaml:"port" envconfig:"BKSF_SERVER_PORT" json:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"BKSF_SERVER_READ_TIMEOUT" json:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"BKSF_SERVER_WRITE_TIMEOUT" json:"write_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"BKSF_SERVER_REQUEST_TIMEOUT" json:"request_timeout"` // Time to wait for a request to finish
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"BKSF_SERVER_SHUTDOWN_TIMEOUT" json:"shutdown_timeout"`
}

// JournalConfig drives the optional change journal: writes are
// pushed to redis lists and mirrored into a boltdb file.
type JournalConfig struct {
	Enable      bool         `yaml:"enable" envconfig:"BKSF_JOURNAL_ENABLE" json:"enable"`
	QueuePrefix string       `yaml:"queue_prefix" envconfig:"BKSF_JOURNAL_QUEUE_PREFIX" json:"queue_prefix"`
	Redis       RedisConfig  `yaml:"redis" json:"redis"`
	BoltDB      BoltDBConfig `yaml:"boltdb" json:"boltdb"`
}

type RedisConfig struct {
	Host          string        `yaml:"host" envconfig:"BKSF_REDIS_HOST" json:"host"`
	Port          string        `yaml:"port" envconfig:"BKSF_REDIS_PORT" json:"port"`
	DialTimeout   time.Duration `yaml:"dial_timeout" envconfig:"BKSF_REDIS_DIAL_TIMEOUT" json:"dial_timeout"`
	ReadTimeout   time.Duration `yaml:"read_timeout" envconfig:"BKSF_REDIS_READ_TIMEOUT" json:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout" envconfig:"BKSF_REDIS_WRITE_TIMEOUT" json:"write_timeout"`
	PoolSize      int           `yaml:"pool_size" envconfig:"BKSF_REDIS_POOL_SIZE" json:"pool_size"`
	PoolTimeout   time.Duration `yaml:"pool_timeout" envconfig:"BKSF_REDIS_POOL_TIMEOUT" json:"pool_timeout"`
	Username      string        `yaml:"username" envconfig:"BKSF_REDIS_USERNAME" json:"-"`
	Password      string        `yaml:"password" envconfig:"BKSF_REDIS_PASSWORD" json:"-"`
	DatabaseIndex int           `yaml:"db_index" envconfig:"BKSF_REDIS_DATABASE_INDEX" json:"db_index"`
}

type BoltDBConfig struct {
	FilePath   string        `yaml:"filepath" envconfig:"BKSF_BOLTDB_FILE_PATH" json:"filepath"`
	Timeout    time.Duration `yaml:"timeout" envconfig:"BKSF_BOLTDB_TIMEOUT" json:"timeout"`
	BucketName string        `yaml:"bucket_name" envconfig:"BKSF_BOLTDB_BUCKET_NAME" json:"bucket_name"`
}

// LoadConfigFile provides an instance of config structure for the all application.
func LoadConfigFile(configFile string) (*Config, error) {
	file, err := os.Open(configFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	cfg := &Config{}
	yd := yaml.NewDecoder(file)
	err = yd.Decode(cfg)

	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnvFile sets the variables found in the dotenv file into the process
// environment. Already defined variables win. A missing file is ignored.
func LoadEnvFile(envFile string) error {
	err := godotenv.Load(envFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// LoadConfigEnvs reads the environments variables and provides an instance of the App config.
func LoadConfigEnvs(prefix string, config *Config) error {
	return envconfig.Process(prefix, config)
}

// SetConfigDefaults fills every non provided parameter with its default value.
func SetConfigDefaults(config *Config) {
	if config.LogFolder == "" {
		config.LogFolder = "./logs"
	}
	if config.LogMaxSize <= 0 {
		config.LogMaxSize = 10
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = 5 * time.Second
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = 10 * time.Second
	}
	if config.Server.RequestTimeout == 0 {
		config.Server.RequestTimeout = 5 * time.Second
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = 30 * time.Second
	}
	if config.Journal.QueuePrefix == "" {
		config.Journal.QueuePrefix = "bookshelf:"
	}
	if config.Journal.BoltDB.Timeout == 0 {
		config.Journal.BoltDB.Timeout = 5 * time.Second
	}
	if config.Journal.BoltDB.BucketName == "" {
		config.Journal.BoltDB.BucketName = "books"
	}
}

// InitConfig setup defaults values for non provided parameters
// and configures build tags values to be used if provided.
func InitConfig(config *Config, gitCommit, gitTag, buildTime string) error {
	if len(gitCommit) != 0 {
		config.GitCommit = gitCommit
	}

	if len(gitTag) != 0 {
		config.GitTag = gitTag
	}

	if len(buildTime) != 0 {
		config.BuildTime = buildTime
	}

	SetConfigDefaults(config)

	if len(config.Server.Host) == 0 || len(config.Server.Port) == 0 {
		return errors.New("make sure to set valid server address and port in configuration file")
	}

	if !config.Journal.Enable {
		return nil
	}

	if len(config.Journal.Redis.Host) == 0 || len(config.Journal.Redis.Port) == 0 {
		return errors.New("journal enabled: make sure to set valid redis address and port in configuration file")
	}

	if len(config.Journal.BoltDB.FilePath) == 0 {
		return errors.New("journal enabled: make sure to set a valid boltdb file path in configuration file")
	}

	return nil
}

// LoadAndInitConfigs loads in order the configs from various predefined sources
// then build the App configuration data.
func LoadAndInitConfigs(configFile, envFile, gitCommit, gitTag, buildTime string) (*Config, error) {
	// Setup the yaml configuration from file.
	config, err := LoadConfigFile(configFile)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from file: %s", err)
	}

	// Set the environment configuration.
	err = LoadEnvFile(envFile)
	if err != nil {
		return config, fmt.Errorf("failed to set environment configurations: %s", err)
	}

	// Use environment variables with prefix `BKSF`.
	err = LoadConfigEnvs(EnvPrefix, config)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from environment: %s", err)
	}

	err = InitConfig(config, gitCommit, gitTag, buildTime)
	if err != nil {
		return config, fmt.Errorf("failed to initialize configurations: %s", err)
	}
	return config, nil
}
