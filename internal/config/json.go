package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/humiapp/humi/internal/flagx"
	"github.com/humiapp/humi/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "3s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	AIBaseURL   string `json:"ai_base_url"`
	AIAPIKey    string `json:"ai_api_key"`
	AssistantID string `json:"assistant_id"`
	VisionModel string `json:"vision_model"`

	ServerBaseURL string `json:"server_base_url"`
	DataDir       string `json:"data_dir"`

	PollInterval        timex.Duration `json:"poll_interval"`
	PollTimeout         timex.Duration `json:"poll_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`

	S3AccessKey    string `json:"s3_access_key"`
	S3SecretKey    string `json:"s3_secret_key"`
	S3Bucket       string `json:"s3_bucket"`
	S3Region       string `json:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`
}

// parseJson overlays cfg with values from the JSON file named by the -c or
// -config flag. Absent file path means no JSON is loaded. Empty JSON fields
// leave the current value in place; read and unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.AIBaseURL, jc.AIBaseURL)
	setString(&cfg.AIAPIKey, jc.AIAPIKey)
	setString(&cfg.AssistantID, jc.AssistantID)
	setString(&cfg.VisionModel, jc.VisionModel)
	setString(&cfg.ServerBaseURL, jc.ServerBaseURL)
	setString(&cfg.DataDir, jc.DataDir)
	setDuration(&cfg.PollInterval, jc.PollInterval)
	setDuration(&cfg.PollTimeout, jc.PollTimeout)
	setDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = time.Duration(v.Duration)
	}
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".humi"
	}
	return filepath.Join(base, "humi")
}
