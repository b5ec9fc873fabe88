package constants

import "time"

const (
	// Version is the application version reported by `airlift version` and `airlift --version`
	Version = "0.1"
	// TokenEnvVar is the name of the environment variable that holds the platform API token
	TokenEnvVar = "AIRLIFT_API_TOKEN"
	// DefaultAPIURL is the platform API root
	DefaultAPIURL = "https://api.heroku.com"
	// DefaultStatusURL is the root of the platform-wide status API
	DefaultStatusURL = "https://status.heroku.com/api/v4"
	// LogSettleDelay is how long the platform needs to provision the build
	// log stream before it can be read
	LogSettleDelay = 3 * time.Second
	// StatusSettleDelay is how long to wait after the log stream closes
	// before the build record reflects a terminal status
	StatusSettleDelay = 5 * time.Second
)
