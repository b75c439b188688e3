package config

import "os"

// parseEnv overlays secrets and endpoints from environment variables. The
// CLI loads a local .env file before this runs, so development setups can
// keep keys out of the JSON config.
func parseEnv(cfg *Config) {
	setString(&cfg.AIAPIKey, os.Getenv("OPENAI_API_KEY"))
	setString(&cfg.AssistantID, os.Getenv("HUMI_ASSISTANT_ID"))
	setString(&cfg.ServerBaseURL, os.Getenv("HUMI_SERVER_URL"))
	setString(&cfg.S3AccessKey, os.Getenv("HUMI_S3_ACCESS_KEY"))
	setString(&cfg.S3SecretKey, os.Getenv("HUMI_S3_SECRET_KEY"))
	setString(&cfg.S3Bucket, os.Getenv("HUMI_S3_BUCKET"))
	setString(&cfg.S3Region, os.Getenv("HUMI_S3_REGION"))
	setString(&cfg.S3BaseEndpoint, os.Getenv("HUMI_S3_ENDPOINT"))
}
