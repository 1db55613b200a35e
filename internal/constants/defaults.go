package constants

// Session name constraints enforced on creation, mirrored by the dashboard UI
const (
	MinSessionNameLength = 2
	MaxSessionNameLength = 30
)

// App identifier constraints
const (
	MaxAppIDLength = 64
)

// Default quota and server configuration
const (
	DefaultMaxConnections = 5
	DefaultServerPort     = 8082
	DefaultAPIKeyBytes    = 24
)

// Default timeout values
const (
	DefaultGatewayTimeoutSec     = 30
	DefaultDatabaseRetryAttempts = 3
	DefaultGracefulShutdownSec   = 30
	DefaultServerReadTimeoutSec  = 15
	DefaultServerWriteTimeoutSec = 15
	DefaultServerIdleTimeoutSec  = 60
	DefaultBackoffInitialMs      = 500
	DefaultBackoffMaxMs          = 60000
	DefaultTokenLeewaySec        = 30
)

// Session status stream defaults
const (
	DefaultStatusPollIntervalSec = 5
)

// Encryption parameters for the api_key column
const (
	EncryptionSalt       = "botlink-db-salt-v1"
	EncryptionLookupSalt = "botlink-lookup-salt-v1"
)

const ServerErrorChannelSize = 1
