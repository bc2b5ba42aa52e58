package config

import (
	"fmt"
	"os"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion       string
	TableNamePrefix string
	EventBusName    string

	// Secondary index names; fixed by the deployed table definitions.
	MonthIndexName   string
	LoginIDIndexName string
	UserIDIndexName  string

	// Cognito configuration
	CognitoClientID   string
	CognitoUserPoolID string

	// Lambda configuration
	Stage string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		AWSRegion:       getEnv("AWS_REGION", "ap-northeast-1"),
		TableNamePrefix: getEnv("TABLE_NAME_PREFIX", ""),
		EventBusName:    getEnv("EVENT_BUS_NAME", ""),

		MonthIndexName:   getEnv("MONTH_INDEX_NAME", "registrationMonth-Index"),
		LoginIDIndexName: getEnv("LOGIN_ID_INDEX_NAME", "loginId-Index"),
		UserIDIndexName:  getEnv("USER_ID_INDEX_NAME", "userId-Index"),

		CognitoClientID:   getEnv("COGNITO_CLIENT_ID", ""),
		CognitoUserPoolID: getEnv("COGNITO_USER_POOL_ID", ""),

		Stage: getEnv("LAMBDA_STAGE", "dev"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.CognitoClientID == "" {
			return fmt.Errorf("COGNITO_CLIENT_ID is required in production")
		}
		if c.CognitoUserPoolID == "" {
			return fmt.Errorf("COGNITO_USER_POOL_ID is required in production")
		}
	}
	return nil
}

// AdagesTableName returns the physical name of the adages table.
func (c *Config) AdagesTableName() string {
	return c.TableNamePrefix + "adagesTable"
}

// UsersTableName returns the physical name of the users table.
func (c *Config) UsersTableName() string {
	return c.TableNamePrefix + "usersTable"
}

// EpisodePostFunctionName returns the sibling function invoked for the
// inline-episode cascade on adage creation.
func (c *Config) EpisodePostFunctionName() string {
	return fmt.Sprintf("share-adage-service-%s-episodePost", c.Stage)
}

// MetricsNamespace returns the CloudWatch namespace for reward metrics.
func (c *Config) MetricsNamespace() string {
	return fmt.Sprintf("ShareAdage/%s", c.Environment)
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
