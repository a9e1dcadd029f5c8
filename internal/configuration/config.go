package configuration

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type MongoConfig struct {
	Uri                     string `mapstructure:"uri"`
	Database                string `mapstructure:"database"`
	UsersCollection         string `mapstructure:"users_collection"`
	ConnectionsCollection   string `mapstructure:"connections_collection"`
	MessagesCollection      string `mapstructure:"messages_collection"`
	NotificationsCollection string `mapstructure:"notifications_collection"`
	PostsCollection         string `mapstructure:"posts_collection"`
	ProfilesCollection      string `mapstructure:"profiles_collection"`
	SettingsCollection      string `mapstructure:"settings_collection"`
}

type ServerConfig struct {
	AppPort        int      `mapstructure:"app_port"`
	SocketPort     int      `mapstructure:"socket_port"`
	SocketRoute    string   `mapstructure:"socket_route"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type AuthConfig struct {
	AccessSecret     string `mapstructure:"access_secret"`
	RefreshSecret    string `mapstructure:"refresh_secret"`
	AccessTTLMinutes int    `mapstructure:"access_ttl_minutes"`
	RefreshTTLDays   int    `mapstructure:"refresh_ttl_days"`
}

type UploadConfig struct {
	Dir       string `mapstructure:"dir"`
	MaxSizeMB int64  `mapstructure:"max_size_mb"`
}

type AIConfig struct {
	APIKey  string   `mapstructure:"api_key"`
	BaseURL string   `mapstructure:"base_url"`
	Models  []string `mapstructure:"models"`
}

type Config struct {
	Mongo  MongoConfig  `mapstructure:"mongo"`
	Server ServerConfig `mapstructure:"server"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Upload UploadConfig `mapstructure:"upload"`
	AI     AIConfig     `mapstructure:"ai"`
}

// LoadConfig reads config.yaml from the given path (or the working directory
// when path is empty) and layers NOGEN_* environment variables on top.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("NOGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Env-only deployments run without a config file.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if config.Auth.AccessSecret == "" || config.Auth.RefreshSecret == "" {
		return nil, fmt.Errorf("auth secrets are required (auth.access_secret, auth.refresh_secret)")
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "nogen")
	v.SetDefault("mongo.users_collection", "users")
	v.SetDefault("mongo.connections_collection", "connections")
	v.SetDefault("mongo.messages_collection", "messages")
	v.SetDefault("mongo.notifications_collection", "notifications")
	v.SetDefault("mongo.posts_collection", "posts")
	v.SetDefault("mongo.profiles_collection", "profiles")
	v.SetDefault("mongo.settings_collection", "settings")

	v.SetDefault("server.app_port", 5000)
	v.SetDefault("server.socket_port", 5001)
	v.SetDefault("server.socket_route", "ws")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})

	v.SetDefault("auth.access_ttl_minutes", 15)
	v.SetDefault("auth.refresh_ttl_days", 30)

	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.max_size_mb", 5)

	v.SetDefault("ai.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("ai.models", []string{
		"deepseek/deepseek-chat-v3-0324:free",
		"meta-llama/llama-3.3-70b-instruct:free",
		"google/gemini-2.0-flash-exp:free",
	})
}
