package types

// LogLevel controls logger verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// DeploymentMode distinguishes local development from deployed consoles.
type DeploymentMode string

const (
	DeploymentModeLocal DeploymentMode = "local"
	DeploymentModeProd  DeploymentMode = "prod"
)
