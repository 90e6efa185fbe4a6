package config

// DefaultQueryPrefix is the instruction the embedding model expects on
// query-side input. Passage-side input must not carry it.
const DefaultQueryPrefix = "Represent this sentence for searching relevant passages: "

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MaxUploadBytes == 0 {
		cfg.Server.MaxUploadBytes = 32 << 20
	}
	if cfg.Embedding.ModelPath == "" {
		cfg.Embedding.ModelPath = "/usr/local/var/erabu/data/models/bge-m3.onnx"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 1024
	}
	if cfg.Embedding.MaxTokens == 0 {
		cfg.Embedding.MaxTokens = 512
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}
	if cfg.Embedding.QueryPrefix == "" {
		cfg.Embedding.QueryPrefix = DefaultQueryPrefix
	}
	if cfg.Match.DefaultTopK == 0 {
		cfg.Match.DefaultTopK = 10
	}
	if cfg.Match.MaxTopK == 0 {
		cfg.Match.MaxTopK = 50
	}
}
