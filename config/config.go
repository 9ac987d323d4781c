package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	ServiceName string
	LoggerLevel string

	ServerHost string
	ServerPort int

	JWTSecret string

	HomeDir string
	DBFile  string
	PIDFile string
}

func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.ServiceName = cast.ToString(getOrReturnDefault("SERVICE_NAME", "cabcab"))
	cfg.LoggerLevel = cast.ToString(getOrReturnDefault("LOGGER_LEVEL", "info"))

	cfg.ServerHost = cast.ToString(getOrReturnDefault("SERVER_HOST", "localhost"))
	cfg.ServerPort = cast.ToInt(getOrReturnDefault("SERVER_PORT", 3000))

	cfg.JWTSecret = cast.ToString(getOrReturnDefault("JWT_SECRET", "cabcab_secret_key"))

	home, _ := os.UserHomeDir()
	cfg.HomeDir = cast.ToString(getOrReturnDefault("CABCAB_HOME", filepath.Join(home, ".cabcab")))
	cfg.DBFile = cast.ToString(getOrReturnDefault("DB_FILE", filepath.Join(cfg.HomeDir, "data", "db.json")))
	cfg.PIDFile = cast.ToString(getOrReturnDefault("PID_FILE", filepath.Join(cfg.HomeDir, "server.pid")))

	return cfg
}

// ServerURL is the base URL the storage client talks to.
func (c Config) ServerURL() string {
	return cast.ToString(getOrReturnDefault("SERVER_URL",
		fmt.Sprintf("http://%s:%d", c.ServerHost, c.ServerPort)))
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
