package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		Path string
	}
	Auth struct {
		PrivateKeyPath  string
		PublicKeyPath   string
		TokenTTLMinutes int
	}
	LLM struct {
		APIKey  string
		Model   string
		BaseURL string
	}
	Coach struct {
		LinksPath     string
		HistoryWindow int
	}
	CORS struct {
		AllowOrigin string
	}
	Storage struct {
		Bucket    string
		KeyPrefix string
		Region    string
		Endpoint  string
	}
	AWS struct {
		Profile string
	}
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	_ = godotenv.Load() // optional .env

	v := viper.New()
	v.SetEnvPrefix("COACH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8000")
	v.SetDefault("database.path", "data/coach.db")
	v.SetDefault("auth.privatekeypath", "private.pem")
	v.SetDefault("auth.publickeypath", "public.pem")
	v.SetDefault("auth.tokenttlminutes", 60)
	v.SetDefault("llm.apikey", "")
	v.SetDefault("llm.model", "gpt-4o")
	v.SetDefault("llm.baseurl", "")
	v.SetDefault("coach.linkspath", "links.txt")
	v.SetDefault("coach.historywindow", 50)
	v.SetDefault("cors.alloworigin", "https://footballai.onrender.com")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.keyprefix", "coach-archives")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("aws.profile", "")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// hosting platforms hand the listening port over as PORT
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = "0.0.0.0:" + port
	}
	// OPENAI_API_KEY is honored for parity with the usual client setup
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	return cfg, nil
}
