package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	ShutdownTimeout   = 5 * time.Second
	ReadHeaderTimeout = 10 * time.Second
)

const (
	UpstreamMaxConnsPerHost     = 100
	UpstreamMaxIdleConnDuration = 1 * time.Minute
	PoolExpiryDuration          = 10 * time.Second
)

const (
	MaxSummonerNameLength = 64
)
