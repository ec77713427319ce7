package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays configuration from environment variables. A .env file in
// the working directory is loaded first when present; missing files are not
// an error. The variable names match the ones the deployment has always used.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	setString(&config.EndpointAddrHTTP, "ADDRESS")
	setString(&config.DatabaseDSN, "DATABASE_DSN")
	setString(&config.SecretKey, "ACCESS_TOKEN_SECRET")
	setString(&config.PasswordHashMode, "PASSWORD_HASH_MODE")

	setString(&config.S3AccessKey, "ACCESS_KEY")
	setString(&config.S3SecretKey, "SECRET_KEY")
	setString(&config.S3Bucket, "BUCKET")
	setString(&config.S3Region, "REGION")
	setString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")

	setString(&config.SendGridAPIKey, "SENDGRID_API_KEY")
	setString(&config.MailFrom, "MAIL_FROM")
	setString(&config.MailTemplateID, "MAIL_TEMPLATE_ID")

	setDuration(&config.AccessTokenValidityDuration, "ACCESS_TOKEN_TTL")
	setDuration(&config.OTPFreshnessWindow, "OTP_FRESHNESS_WINDOW")
	setDuration(&config.OTPPruneInterval, "OTP_PRUNE_INTERVAL")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return
	}
	*dst = d
}
