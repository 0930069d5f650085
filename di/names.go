package di

// CoreNames defines the token names for the automation CLI's shared
// services. Applications embed this struct in their own DI names.
type CoreNames struct {
	// Core infrastructure
	Config string
	Logger string

	// Automation services
	RateLimiter      string
	PathValidator    string
	AppCache         string
	NetworkSanitizer string
}

// Core contains the well-known token names for the core service layer.
var Core = CoreNames{
	// Core infrastructure
	Config: "config",
	Logger: "logger",

	// Automation services
	RateLimiter:      "rate_limiter",
	PathValidator:    "path_validator",
	AppCache:         "app_cache",
	NetworkSanitizer: "network_sanitizer",
}
