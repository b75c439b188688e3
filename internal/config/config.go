package config

import "time"

// Config holds runtime settings for the Humi CLI.
//
// Fields cover the AI endpoint (vision + assistant), the remote document
// store, the blob store, and local storage paths. Durations are
// time.Duration values (e.g. 60*time.Second).
type Config struct {
	// AIBaseURL is the OpenAI-compatible API root, without trailing slash.
	AIBaseURL string
	// AIAPIKey authenticates vision and assistant calls.
	AIAPIKey string
	// AssistantID selects the pre-configured identification assistant.
	AssistantID string
	// VisionModel is the model used for band description extraction.
	VisionModel string

	// ServerBaseURL is the root of the remote document store API.
	ServerBaseURL string

	// DataDir is the app-private directory for the local database and
	// cached images.
	DataDir string

	// PollInterval is the assistant run poll cadence.
	PollInterval time.Duration
	// PollTimeout bounds the whole assistant polling loop.
	PollTimeout time.Duration
	// OnlineCheckInterval is how often background sync probes the remote
	// store for queued entries.
	OnlineCheckInterval time.Duration

	// Blob store settings; Upload is skipped when Bucket is empty.
	S3AccessKey    string
	S3SecretKey    string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.AIBaseURL = "https://api.openai.com/v1"
	c.VisionModel = "gpt-4o"
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.DataDir = defaultDataDir()
	c.PollInterval = 1 * time.Second
	c.PollTimeout = 60 * time.Second
	c.OnlineCheckInterval = 30 * time.Second
	c.S3Region = "us-east-1"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), environment variables, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
