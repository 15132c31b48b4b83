package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppEnv string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration

	RecoveryCodeTTL time.Duration

	MailTopicARN     string
	MailQueueSize    int
	MailSendAttempts int
	MailPerSecond    int
	MailSendTimeout  time.Duration
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users    string
	Likes    string
	Blogs    string
	Posts    string
	Comments string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppEnv: getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:    getEnv("DYNAMO_TABLE_USERS", "users"),
			Likes:    getEnv("DYNAMO_TABLE_LIKES", "likes"),
			Blogs:    getEnv("DYNAMO_TABLE_BLOGS", "blogs"),
			Posts:    getEnv("DYNAMO_TABLE_POSTS", "posts"),
			Comments: getEnv("DYNAMO_TABLE_COMMENTS", "comments"),
		},

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         time.Duration(getEnvInt("JWT_EXPIRY_MINUTES", 10)) * time.Minute,

		RecoveryCodeTTL: time.Duration(getEnvInt("RECOVERY_CODE_TTL_MINUTES", 60)) * time.Minute,

		MailTopicARN:     getEnv("MAIL_TOPIC_ARN", ""),
		MailQueueSize:    getEnvInt("MAIL_QUEUE_SIZE", 256),
		MailSendAttempts: getEnvInt("MAIL_SEND_ATTEMPTS", 3),
		MailPerSecond:    getEnvInt("MAIL_PER_SECOND", 10),
		MailSendTimeout:  time.Duration(getEnvInt("MAIL_SEND_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
