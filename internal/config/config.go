package config

import (
	"os"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	SNSRegion   string
	SNSTopicARN string // events topic consumed by the notification dispatcher

	JWTPublicKeyPath string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Subscriptions    string
	SubscriptionKeys string
	Notifications    string
	Documents        string
	Users            string
	Events           string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Subscriptions:    getEnv("DYNAMO_TABLE_SUBSCRIPTIONS", "subscriptions"),
			SubscriptionKeys: getEnv("DYNAMO_TABLE_SUBSCRIPTION_KEYS", "subscription_keys"),
			Notifications:    getEnv("DYNAMO_TABLE_NOTIFICATIONS", "notifications"),
			Documents:        getEnv("DYNAMO_TABLE_DOCUMENTS", "documents"),
			Users:            getEnv("DYNAMO_TABLE_USERS", "users"),
			Events:           getEnv("DYNAMO_TABLE_EVENTS", "events"),
		},

		SNSRegion:   getEnv("SNS_REGION", "us-east-1"),
		SNSTopicARN: getEnv("SNS_EVENTS_TOPIC_ARN", ""),

		JWTPublicKeyPath: getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
