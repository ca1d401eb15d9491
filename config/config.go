package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	SecretKey []byte

	DatabaseURL string
	Port        string

	UltramsgInstanceID string
	UltramsgToken      string
	UltramsgBaseURL    string

	GroqAPIKey string
	GroqModel  string

	Debug bool
)

func Init() error {
	if err := godotenv.Load(); err != nil {
		logrus.Printf("no .env file loaded: %v", err)
	}

	var result *multierror.Error

	DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if DatabaseURL == "" {
		result = multierror.Append(result, fmt.Errorf("DATABASE_URL not set"))
	}

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		result = multierror.Append(result, fmt.Errorf("JWT_SECRET_KEY not set"))
	}
	SecretKey = []byte(secret)

	Port = getEnv("PORT", "8000")

	UltramsgInstanceID = strings.TrimSpace(getEnv("ULTRAMSG_INSTANCE_ID", ""))
	UltramsgToken = strings.TrimSpace(os.Getenv("ULTRAMSG_TOKEN"))
	UltramsgBaseURL = strings.TrimRight(getEnv("ULTRAMSG_BASE_URL", "https://api.ultramsg.com"), "/")
	if UltramsgInstanceID == "" {
		result = multierror.Append(result, fmt.Errorf("ULTRAMSG_INSTANCE_ID not set"))
	}
	if UltramsgToken == "" {
		result = multierror.Append(result, fmt.Errorf("ULTRAMSG_TOKEN not set"))
	}

	GroqAPIKey = strings.TrimSpace(os.Getenv("GROQ_API_KEY"))
	GroqModel = getEnv("GROQ_MODEL", "llama3-8b-8192")

	switch strings.ToLower(os.Getenv("DEBUG")) {
	case "1", "true", "yes", "y":
		Debug = true
	}

	return result.ErrorOrNil()
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
