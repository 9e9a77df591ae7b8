package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port     string
	LogLevel logrus.Level

	// FixturesDir vazio usa os fixtures embutidos no binário.
	FixturesDir      string
	SimulatedLatency bool
	LatencyScale     float64

	// RabbitMQURL vazio desliga a fila; eventos viram no-op.
	RabbitMQURL string

	Mail            MailConfig
	DigestRecipient string

	RateLimitPerMinute int
	RateLimitWindow    time.Duration
	CORSOrigins        []string
}

type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Enabled indica se há SMTP configurado.
func (m MailConfig) Enabled() bool {
	return m.Host != ""
}

// Load lê o .env (se existir) e depois o ambiente.
func Load(files ...string) Config {
	_ = godotenv.Load(files...)
	return FromEnv()
}

func FromEnv() Config {
	lvl, err := logrus.ParseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		lvl = logrus.InfoLevel
	}

	return Config{
		Port:             envOr("PORT", "8080"),
		LogLevel:         lvl,
		FixturesDir:      os.Getenv("FIXTURES_DIR"),
		SimulatedLatency: envBool("SIMULATED_LATENCY", true),
		LatencyScale:     envFloat("LATENCY_SCALE", 1),
		RabbitMQURL:      os.Getenv("RABBITMQ_URL"),
		Mail: MailConfig{
			Host:     os.Getenv("MAIL_HOST"),
			Port:     envInt("MAIL_PORT", 587),
			User:     os.Getenv("MAIL_USER"),
			Password: os.Getenv("MAIL_PASS"),
			From:     envOr("MAIL_FROM", "pipeline@localhost"),
		},
		DigestRecipient:    os.Getenv("DIGEST_RECIPIENT"),
		RateLimitPerMinute: envInt("RATE_LIMIT_PER_MINUTE", 60),
		RateLimitWindow:    time.Minute,
		CORSOrigins:        envList("CORS_ORIGINS", []string{"http://localhost:5173"}),
	}
}

// EffectiveLatencyScale é 0 quando a latência simulada está desligada.
func (c Config) EffectiveLatencyScale() float64 {
	if !c.SimulatedLatency {
		return 0
	}
	return c.LatencyScale
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return n
	}
	return def
}

func envFloat(k string, def float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(k), 64); err == nil && f >= 0 {
		return f
	}
	return def
}

func envBool(k string, def bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(k)); err == nil {
		return b
	}
	return def
}

func envList(k string, def []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
