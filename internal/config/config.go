// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults come from New; file and env layers override them.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Store backend names accepted by the `store` key.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// Store selects the registry backend: memory or sqlite.
	Store string `koanf:"store"`

	// SQLitePath locates the registry database when store=sqlite.
	SQLitePath string `koanf:"sqlite_path"`

	// JournalPath locates the vote audit database. Empty keeps the journal
	// in memory.
	JournalPath string `koanf:"journal_path"`

	// KFactor is the Elo sensitivity constant.
	KFactor float64 `koanf:"k_factor"`

	// BaseRating is assigned to every model at seed time.
	BaseRating float64 `koanf:"base_rating"`

	// JournalQueueSize bounds the in-memory audit queue.
	JournalQueueSize int `koanf:"journal_queue_size"`

	// JournalWorkers sets the number of journal writer goroutines.
	JournalWorkers int `koanf:"journal_workers"`

	// VoteRetries bounds internal retries on store write contention.
	VoteRetries int `koanf:"vote_retries"`

	// MatchSeed seeds the matchmaker's random source; 0 uses wall-clock
	// entropy. Non-zero values make matchups reproducible.
	MatchSeed int64 `koanf:"match_seed"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":8090",
		Store:            StoreMemory,
		SQLitePath:       "arena.db",
		JournalPath:      "",
		KFactor:          32,
		BaseRating:       1500,
		JournalQueueSize: 10_000,
		JournalWorkers:   2,
		VoteRetries:      3,
		MatchSeed:        0,
	}
}
