package config

import "time"

const (
	DefaultShutdownTimeout = 10 * time.Second
	DefaultReadTimeout     = 15 * time.Second
	DefaultPGMaxConns      = 5
	DefaultPGMinConns      = 1
	DefaultPGReadyTimeout  = 15 * time.Second
	DefaultChartWidth      = 1024
	DefaultChartHeight     = 512
)
