package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var Conf *Config

type (
	Config struct {
		Debug    bool
		TestMode bool
		Env      string
		AppName  string
		Build    string

		// DataDir holds the CSV tables; one file per table.
		DataDir string

		SecretKey string // JWT signing key

		// role secrets; compared by exact string equality only
		AdminSecret    string
		TechLeadSecret string

		TechLeadEmails   []string
		DefaultFromEmail string
		SendgridApiKey   string
		RollbarToken     string
		FrontendBaseURL  string

		Server ServerConfig
	}

	ServerConfig struct {
		Host               string
		Addr               string
		JWTExpirationDelta time.Duration
	}
)

func init() {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Standup")
	v.SetDefault("build", "dev")
	v.SetDefault("dataDir", Getwd())
	v.SetDefault("secretKey", "wm0&1+bm%!5w)l^v9p#ke=cn*qkz=x-7v@10ri0b3pu&#+yn-4")
	v.SetDefault("adminSecret", "")
	v.SetDefault("techLeadSecret", "")
	v.SetDefault("techLeadEmails", []string{})
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("frontendBaseURL", "http://localhost:8000")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.jwtExpirationDelta", 8*time.Hour)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetDefault("env", env)
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

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

	Conf = new(Config)
	if err := v.Unmarshal(Conf); err != nil {
		log.Fatalf("config.viper.Unmarshal: %v", err)
	}
}
