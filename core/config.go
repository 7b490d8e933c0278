package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every knob the application needs. It is loaded once at
// startup and passed explicitly to constructors; nothing reads it as a
// global afterwards.
type Config struct {
	Env      string // DEV (default), TEST, QA, PROD
	Debug    bool
	TestMode bool
	AppName  string
	WorkDir  string

	Server struct {
		Addr            string
		ShutdownTimeout time.Duration
	}

	// Storage selects the blob store backend: inmem | file | redis | postgres.
	Storage     string
	DataDir     string
	RedisURL    string
	DatabaseURL string

	DefaultFromEmail mail.Address
	SendgridAPIKey   string
	RollbarToken     string

	// Gemini settings. The API key here is only a fallback; the key saved
	// through the settings API takes precedence.
	GeminiBaseURL string
	GeminiModel   string
	GeminiAPIKey  string
}

// LoadConfig reads configuration from the environment, with an optional
// config/.env.<env> dotenv file loaded first (ignored if absent).
func LoadConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Hatari")
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("shutdownTimeout", 10*time.Second)
	v.SetDefault("storage", "file")
	v.SetDefault("dataDir", filepath.Join(Getwd(), "data"))
	v.SetDefault("redisUrl", "redis://localhost:6379/0")
	v.SetDefault("databaseUrl", "")
	v.SetDefault("defaultFromEmail", "alerts@localhost")
	v.SetDefault("geminiBaseUrl", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("geminiModel", "gemini-2.0-flash-exp")

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:         env,
		Debug:       v.GetBool("debug"),
		TestMode:    v.GetBool("testMode"),
		AppName:     v.GetString("appName"),
		WorkDir:     Getwd(),
		Storage:     v.GetString("storage"),
		DataDir:     v.GetString("dataDir"),
		RedisURL:    v.GetString("redisUrl"),
		DatabaseURL: v.GetString("databaseUrl"),
		DefaultFromEmail: mail.Address{
			Name:    v.GetString("appName"),
			Address: v.GetString("defaultFromEmail"),
		},
		SendgridAPIKey: v.GetString("sendgridApiKey"),
		RollbarToken:   v.GetString("rollbarToken"),
		GeminiBaseURL:  v.GetString("geminiBaseUrl"),
		GeminiModel:    v.GetString("geminiModel"),
		GeminiAPIKey:   v.GetString("geminiApiKey"),
	}
	conf.Server.Addr = v.GetString("serverAddr")
	conf.Server.ShutdownTimeout = v.GetDuration("shutdownTimeout")
	return conf
}
