package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spirocarbon/farmrecord/internal/flagx"
	"github.com/spirocarbon/farmrecord/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. Interval fields use timex.Duration, which accepts both string values
// such as "300s" and integer nanoseconds. After unmarshalling, values are
// copied into the runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP            string          `json:"endpoint_addr_http"`
	DatabaseDSN                 string          `json:"database_dsn"`
	SecretKey                   string          `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	OTPLength                   int             `json:"otp_length"`
	OTPFreshnessWindow          *timex.Duration `json:"otp_freshness_window"`
	OTPPruneInterval            *timex.Duration `json:"otp_prune_interval"`
	PasswordHashMode            string          `json:"password_hash_mode"`
	S3AccessKey                 string          `json:"s3_access_key"`
	S3SecretKey                 string          `json:"s3_secret_key"`
	S3Bucket                    string          `json:"s3_bucket"`
	S3Region                    string          `json:"s3_region"`
	S3BaseEndpoint              string          `json:"s3_base_endpoint"`
	SendGridAPIKey              string          `json:"sendgrid_api_key"`
	MailFrom                    string          `json:"mail_from"`
	MailTemplateID              string          `json:"mail_template_id"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config. The file path is taken from the -c or -config command-line flags;
// when neither is set, no JSON file is loaded. An unreadable or invalid file
// panics, since the operator explicitly asked for it.
//
// Only fields present in the file override the current values.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	}
	if c.OTPLength > 0 {
		config.OTPLength = c.OTPLength
	}
	if c.OTPFreshnessWindow != nil {
		config.OTPFreshnessWindow = time.Duration(c.OTPFreshnessWindow.Duration)
	}
	if c.OTPPruneInterval != nil {
		config.OTPPruneInterval = time.Duration(c.OTPPruneInterval.Duration)
	}
	if c.PasswordHashMode != "" {
		config.PasswordHashMode = c.PasswordHashMode
	}
	if c.S3AccessKey != "" {
		config.S3AccessKey = c.S3AccessKey
	}
	if c.S3SecretKey != "" {
		config.S3SecretKey = c.S3SecretKey
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
	if c.SendGridAPIKey != "" {
		config.SendGridAPIKey = c.SendGridAPIKey
	}
	if c.MailFrom != "" {
		config.MailFrom = c.MailFrom
	}
	if c.MailTemplateID != "" {
		config.MailTemplateID = c.MailTemplateID
	}
}
