package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load() // Load environment variables from .env file

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and .env file.
func Load[T any](cfg T) error {
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		return err
	}

	return nil
}

// Config holds the configuration for the benchmark run.
type Config struct {
	OperationsFile string     `env:"OPERATIONS_FILE" envDefault:"operations.csv"`
	Sink           SinkConfig `envPrefix:"SINK_"`
}

// SinkConfig holds the fixed experimental parameters of the event sinks.
// They are explicit configuration, not incidental defaults: channel bound,
// buffer size and flush cadence are the independent variables the benchmark
// compares, so a run's values must be known and stable.
type SinkConfig struct {
	// OutputDir is where the file-backed sinks write their logs.
	OutputDir string `env:"OUTPUT_DIR" envDefault:"output_logs"`
	// ChannelCapacity bounds the async sinks' channels. Emit blocks only
	// when the channel is full.
	ChannelCapacity int `env:"CHANNEL_CAPACITY" envDefault:"65536"`
	// BufferSize is the in-process write buffer, in bytes, for the buffered
	// and async consumers.
	BufferSize int `env:"BUFFER_SIZE" envDefault:"65536"`
	// FlushInterval is the tracing file appender's background flush cadence.
	FlushInterval time.Duration `env:"FLUSH_INTERVAL" envDefault:"1s"`
}
