package utils

import (
	"Leaf-Love-Backend/domain"
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	// Application configuration
	AppEnv           string `yaml:"APP_ENV"`
	AppPort          string `yaml:"APP_PORT"`
	BodyLimitMB      int    `yaml:"BODY_LIMIT_MB"`
	CORSAllowOrigins string `yaml:"CORS_ALLOW_ORIGINS"`

	// Database configuration
	MongoDBURI      string `yaml:"MONGODB_URI"`
	MongoDBDatabase string `yaml:"MONGODB_DATABASE"`

	// AI service configuration
	AIProvider       string `yaml:"AI_PROVIDER"`
	AIMaxRetries     int    `yaml:"AI_MAX_RETRIES"`
	AITimeoutSeconds int    `yaml:"AI_TIMEOUT_SECONDS"`
	OpenAIAPIKey     string `yaml:"OPENAI_API_KEY"`
	OpenAIModel      string `yaml:"OPENAI_MODEL"`
	OpenAIBaseURL    string `yaml:"OPENAI_BASE_URL"`
	GeminiAPIKey     string `yaml:"GEMINI_API_KEY"`
	GeminiModel      string `yaml:"GEMINI_MODEL"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var config = defaultConfig()

func defaultConfig() Config {
	return Config{
		AppEnv:           domain.EnvProduction,
		AppPort:          "8080",
		BodyLimitMB:      10,
		CORSAllowOrigins: "*",
		MongoDBDatabase:  "plants",
		AIProvider:       ProviderOpenAI,
		AIMaxRetries:     3,
		AITimeoutSeconds: 60,
		OpenAIModel:      "gpt-4o-mini",
		GeminiModel:      "gemini-2.0-flash",
	}
}

// LoadConfig reads config.yaml, then .env and .env.local, then the process
// environment. Later sources win.
func LoadConfig() {
	config = defaultConfig()

	file, err := os.ReadFile("config.yaml")
	if err == nil {
		if err := yaml.Unmarshal(file, &config); err != nil {
			log.Warnf("Error parsing YAML file: %v", err)
		}
	} else if !os.IsNotExist(err) {
		log.Warnf("Error reading YAML file: %v", err)
	}

	dotenv := map[string]string{}
	for _, name := range []string{".env", ".env.local"} {
		values, err := godotenv.Read(name)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Warnf("Error reading %s: %v", name, err)
			}
			continue
		}
		for k, v := range values {
			dotenv[k] = v
		}
	}

	config.applyEnv(func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	})
}

func (c *Config) applyEnv(lookup func(string) string) {
	setString := func(dst *string, keys ...string) {
		for _, key := range keys {
			if v := strings.TrimSpace(lookup(key)); v != "" {
				*dst = v
				return
			}
		}
	}
	setInt := func(dst *int, key string) {
		v := strings.TrimSpace(lookup(key))
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Warnf("Ignoring %s=%q: %v", key, v, err)
			return
		}
		*dst = n
	}

	setString(&c.AppEnv, "APP_ENV", "NODE_ENV")
	setString(&c.AppPort, "APP_PORT", "PORT")
	setInt(&c.BodyLimitMB, "BODY_LIMIT_MB")
	setString(&c.CORSAllowOrigins, "CORS_ALLOW_ORIGINS")
	setString(&c.MongoDBURI, "MONGODB_URI", "DATABASE_URI")
	setString(&c.MongoDBDatabase, "MONGODB_DATABASE")
	setString(&c.AIProvider, "AI_PROVIDER")
	setInt(&c.AIMaxRetries, "AI_MAX_RETRIES")
	setInt(&c.AITimeoutSeconds, "AI_TIMEOUT_SECONDS")
	setString(&c.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&c.OpenAIModel, "OPENAI_MODEL")
	setString(&c.OpenAIBaseURL, "OPENAI_BASE_URL")
	setString(&c.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.GeminiModel, "GEMINI_MODEL")
	setString(&c.AWSS3Bucket, "AWS_S3_BUCKET")
	setString(&c.AWSS3Region, "AWS_S3_REGION")
	setString(&c.AWSAccessKey, "AWS_ACCESS_KEY")
	setString(&c.AWSSecretKey, "AWS_SECRET_KEY")

	c.AIProvider = strings.ToLower(c.AIProvider)
}

// Validate reports the first missing credential. It does not contact any
// external service.
func (c Config) Validate() error {
	apiKey := c.OpenAIAPIKey
	if c.AIProvider == ProviderGemini {
		apiKey = c.GeminiAPIKey
	}
	if strings.TrimSpace(apiKey) == "" {
		return c.MissingAIKeyError()
	}

	if strings.TrimSpace(c.MongoDBURI) == "" {
		return &domain.ConfigError{Message: "MongoDB URI is not defined"}
	}
	return nil
}

// MissingAIKeyError names the credential of the selected provider.
func (c Config) MissingAIKeyError() *domain.ConfigError {
	if c.AIProvider == ProviderGemini {
		return &domain.ConfigError{Message: "Gemini API key is not defined"}
	}
	return &domain.ConfigError{Message: "OpenAI API key is not defined"}
}

func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, domain.EnvDevelopment)
}

func Current() Config {
	return config
}

func ValidateConfig() error {
	return config.Validate()
}

func GetConfig(key string) string {
	switch key {
	case "APP_ENV":
		return config.AppEnv
	case "APP_PORT":
		return config.AppPort
	case "BODY_LIMIT_MB":
		return strconv.Itoa(config.BodyLimitMB)
	case "CORS_ALLOW_ORIGINS":
		return config.CORSAllowOrigins
	case "MONGODB_URI", "DATABASE_URI":
		return config.MongoDBURI
	case "MONGODB_DATABASE":
		return config.MongoDBDatabase
	case "AI_PROVIDER":
		return config.AIProvider
	case "AI_MAX_RETRIES":
		return strconv.Itoa(config.AIMaxRetries)
	case "AI_TIMEOUT_SECONDS":
		return strconv.Itoa(config.AITimeoutSeconds)
	case "OPENAI_API_KEY":
		return config.OpenAIAPIKey
	case "OPENAI_MODEL":
		return config.OpenAIModel
	case "OPENAI_BASE_URL":
		return config.OpenAIBaseURL
	case "GEMINI_API_KEY":
		return config.GeminiAPIKey
	case "GEMINI_MODEL":
		return config.GeminiModel
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	default:
		return ""
	}
}
