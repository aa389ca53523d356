package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var configDir string
var configFilePath string
var credentialsPath string

// getConfigDir returns platform-specific config directory
func getConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		// Windows: %LOCALAPPDATA%\deserve
		appData := os.Getenv("LOCALAPPDATA")
		if appData == "" {
			appData = os.Getenv("APPDATA")
		}
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = home
		}
		return filepath.Join(appData, "deserve"), nil
	}

	// Unix-like (macOS, Linux): ~/.config/deserve
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "deserve"), nil
}

// getSystemConfigPaths returns platform-specific system config paths
func getSystemConfigPaths() []string {
	if runtime.GOOS == "windows" {
		return []string{filepath.Join(os.Getenv("ProgramFiles"), "Deserve", "config.toml")}
	}

	return []string{
		"/etc/deserve/config.toml",
		"/usr/local/etc/deserve/config.toml",
	}
}

// Init initializes the configuration
func Init(configPath string) error {
	var err error
	if configPath != "" {
		configDir = filepath.Dir(configPath)
		configFilePath = configPath
	} else {
		configDir, err = getConfigDir()
		if err != nil {
			return err
		}
		configFilePath = filepath.Join(configDir, "config.toml")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	credentialsPath = filepath.Join(configDir, "credentials")

	// A .env next to the working directory mirrors the web client's env files.
	_ = godotenv.Load()

	viper.Reset()
	viper.SetConfigType("toml")

	setDefaults()
	bindEnv()

	// Load system config first (if exists) - serves as foundation
	for _, sysConfigPath := range getSystemConfigPaths() {
		if _, err := os.Stat(sysConfigPath); err == nil {
			viper.SetConfigFile(sysConfigPath)
			_ = viper.ReadInConfig()
			break
		}
	}

	// User config overrides system config
	viper.SetConfigFile(configFilePath)
	_ = viper.MergeInConfig()

	return nil
}

func setDefaults() {
	viper.SetDefault("api.base_url", "http://localhost:5000/")
	viper.SetDefault("api.timeout", 30)
	viper.SetDefault("auth.store", "file")
	viper.SetDefault("auth.firebase_api_key", "")
	viper.SetDefault("auth.callback_addr", "127.0.0.1:8765")
	viper.SetDefault("admin.user_uid", "")
	viper.SetDefault("sync.debounce", "500ms")
	viper.SetDefault("output.format", "text")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", filepath.Join(configDir, "deserve.log"))
	viper.SetDefault("log.max_size_mb", 5)
	viper.SetDefault("log.max_backups", 3)
}

// bindEnv maps environment variables onto config keys. The NEXT_PUBLIC_*
// names are the ones the web client's deployment already defines.
func bindEnv() {
	viper.SetEnvPrefix("DIDE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	_ = viper.BindEnv("api.base_url", "DIDE_BASE_URL", "NEXT_PUBLIC_BASE_URL")
	_ = viper.BindEnv("admin.user_uid", "DIDE_ADMIN_USER_UID", "NEXT_PUBLIC_ADMIN_USER_UID", "ADMIN_USER_UID")
	_ = viper.BindEnv("auth.firebase_api_key", "DIDE_FIREBASE_API_KEY", "NEXT_PUBLIC_FIREBASE_API_KEY")
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetString returns a string configuration value
func GetString(key string) string {
	value := viper.GetString(key)
	if key == "log.file" {
		return expandPath(value)
	}
	return value
}

// GetInt returns an int configuration value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool configuration value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a duration configuration value ("500ms", "2s").
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// Set overrides a value for the current process only.
func Set(key string, value interface{}) {
	viper.Set(key, value)
}

// SetString sets a string configuration value and persists it
func SetString(key string, value string) error {
	viper.Set(key, value)
	return viper.WriteConfigAs(configFilePath)
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() string {
	return configDir
}

// GetConfigFilePath returns the user config file path
func GetConfigFilePath() string {
	return configFilePath
}

// GetCredentialsPath returns the path to the credentials file
func GetCredentialsPath() string {
	return credentialsPath
}
