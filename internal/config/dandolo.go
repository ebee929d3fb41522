package config

// DefaultBaseURL is the production API host used when no override is given.
const DefaultBaseURL = "https://api.dandolo.ai"

// GetDandoloAPIKey returns the configured API key, empty when unset
func GetDandoloAPIKey() string {
	return GetEnvOrDefault("DANDOLO_API_KEY", "")
}

// GetDandoloBaseURL returns the configured base URL
func GetDandoloBaseURL() string {
	return GetEnvOrDefault("DANDOLO_BASE_URL", DefaultBaseURL)
}
