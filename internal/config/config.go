package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Service names accepted in server.services.
const (
	ServiceUser      = "user"
	ServiceGymPass   = "gympass"
	ServiceTask      = "task"
	ServiceTrainings = "trainings"
)

// AllServices lists every service the binary can host.
var AllServices = []string{ServiceUser, ServiceGymPass, ServiceTask, ServiceTrainings}

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RabbitMQ  RabbitMQConfig  `mapstructure:"rabbitmq"`
	S3        S3Config        `mapstructure:"s3"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	Env          string        `mapstructure:"env"`
	Services     []string      `mapstructure:"services"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// RedisConfig configures the offer cache. An empty address disables caching.
type RedisConfig struct {
	Address  string        `mapstructure:"address"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RabbitMQConfig configures domain event publishing. An empty URL disables it.
type RabbitMQConfig struct {
	URL      string        `mapstructure:"url"`
	Exchange string        `mapstructure:"exchange"`
	Retries  int           `mapstructure:"retries"`
	Delay    time.Duration `mapstructure:"delay"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// RateLimitConfig limits login attempts per client IP.
type RateLimitConfig struct {
	LoginPerMinute int `mapstructure:"login_per_minute"`
	LoginBurst     int `mapstructure:"login_burst"`
}

// HasService reports whether name is among the configured services.
func (c Config) HasService(name string) bool {
	for _, s := range c.Server.Services {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return true
		}
	}
	return false
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, jwt.expiration -> JWT_EXPIRATION
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.env", "production")
	v.SetDefault("server.services", AllServices)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "gym_system")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "1h")
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "10m")
	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.exchange", "gym.events")
	v.SetDefault("rabbitmq.retries", 5)
	v.SetDefault("rabbitmq.delay", "2s")
	// Unmarshal only sees keys viper already knows, so every env-settable
	// key needs a default.
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "gym-attachments")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("ratelimit.login_per_minute", 10)
	v.SetDefault("ratelimit.login_burst", 5)

	err = v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		// Config file is optional, env vars and defaults are enough.
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}

	// SERVER_SERVICES arrives as a single comma separated string.
	if len(config.Server.Services) == 1 && strings.Contains(config.Server.Services[0], ",") {
		config.Server.Services = strings.Split(config.Server.Services[0], ",")
	}

	if config.JWT.Secret == "" {
		return config, errors.New("jwt.secret must be set")
	}
	return config, nil
}
