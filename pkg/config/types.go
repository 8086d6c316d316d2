package config

import "github.com/collegeconnect/socialgraph/pkg/models"

// Config represents the socialgraphd configuration
type Config struct {
	LogLevel    string            `yaml:"log_level"`
	LogFormat   string            `yaml:"log_format"`
	HTTPAddr    string            `yaml:"http_addr"`
	GRPCAddr    string            `yaml:"grpc_addr"`
	Graph       GraphConfig       `yaml:"graph"`
	Suggestions SuggestionsConfig `yaml:"suggestions"`
	Requests    RequestsConfig    `yaml:"requests"`
	SeedFile    string            `yaml:"seed_file,omitempty"`
}

// GraphConfig controls relationship graph mutations
type GraphConfig struct {
	PurgePendingOnFriend bool `yaml:"purge_pending_on_friend"`
}

// SuggestionsConfig controls the suggestion engine
type SuggestionsConfig struct {
	CacheSize   int    `yaml:"cache_size"`    // 0 disables the result cache
	DFSMaxDepth int    `yaml:"dfs_max_depth"` // 0 means unlimited
	DFSOrder    string `yaml:"dfs_order"`     // mutual_count or discovery
	MaxResults  int    `yaml:"max_results"`   // 0 means unlimited
}

// RequestsConfig throttles outgoing friend requests per requester
type RequestsConfig struct {
	RatePerMinute int `yaml:"rate_per_minute"` // 0 disables throttling
	Burst         int `yaml:"burst"`
	MaxTracked    int `yaml:"max_tracked"` // idle buckets beyond this are evicted, least recent first
}

// DFS orderings accepted in SuggestionsConfig.DFSOrder
const (
	DFSOrderMutualCount = "mutual_count"
	DFSOrderDiscovery   = "discovery"
)

// Seed preloads friendships and pending requests at startup
type Seed struct {
	Friendships [][]models.UserID      `yaml:"friendships"`
	Requests    []models.FriendRequest `yaml:"requests"`
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "json",
		HTTPAddr:  ":8080",
		GRPCAddr:  ":50051",
		Graph: GraphConfig{
			PurgePendingOnFriend: true,
		},
		Suggestions: SuggestionsConfig{
			CacheSize: 1024,
			DFSOrder:  DFSOrderMutualCount,
		},
		Requests: RequestsConfig{
			RatePerMinute: 30,
			Burst:         10,
			MaxTracked:    10000,
		},
	}
}
