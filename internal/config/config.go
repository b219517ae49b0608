package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Config is the complete server configuration. Values come from defaults,
// then an optional JSON config file, then environment variables, in that
// order of precedence.
type Config struct {
	Server     ServerConfig     `json:"server"`
	Neo4j      Neo4jConfig      `json:"neo4j"`
	Qdrant     QdrantConfig     `json:"qdrant"`
	Embeddings EmbeddingsConfig `json:"embeddings"`
}

// ServerConfig holds front-end settings.
type ServerConfig struct {
	Addr             string `json:"addr"`
	HeartbeatSeconds int    `json:"heartbeat_seconds"`
	LogFile          string `json:"log_file,omitempty"`
}

// Neo4jConfig holds the graph store connection settings.
type Neo4jConfig struct {
	URI      string `json:"uri"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Database string `json:"database,omitempty"`
}

// QdrantConfig holds the vector store connection settings.
type QdrantConfig struct {
	Host   string `json:"host"`
	Port   int    `json:"port"`
	APIKey string `json:"api_key,omitempty"`
	UseTLS bool   `json:"use_tls,omitempty"`
}

// EmbeddingsConfig holds the embedding model settings. VectorsPath points at
// a GloVe-format word-vector file provisioned at deploy time.
type EmbeddingsConfig struct {
	Model       string `json:"model"`
	VectorsPath string `json:"vectors_path"`
	Normalize   bool   `json:"normalize"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:             ":8100",
			HeartbeatSeconds: 30,
		},
		Neo4j: Neo4jConfig{
			URI:      "bolt://localhost:7687",
			Username: "neo4j",
		},
		Qdrant: QdrantConfig{
			Host: "localhost",
			Port: 6334,
		},
		Embeddings: EmbeddingsConfig{
			Model: "glove-6B.300d",
		},
	}
}

// Load builds the configuration from path (empty means the
// KNOWLEDGE_MCP_CONFIG env var or "knowledge-mcp.json"), then applies
// environment overrides. A missing config file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("KNOWLEDGE_MCP_CONFIG")
	}
	if path == "" {
		path = "knowledge-mcp.json"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Neo4j.URI, "NEO4J_URI")
	setString(&c.Neo4j.Username, "NEO4J_USER")
	setString(&c.Neo4j.Password, "NEO4J_PASSWORD")
	setString(&c.Neo4j.Database, "NEO4J_DATABASE")

	setString(&c.Qdrant.Host, "QDRANT_HOST")
	setInt(&c.Qdrant.Port, "QDRANT_PORT")
	setString(&c.Qdrant.APIKey, "QDRANT_API_KEY")

	setString(&c.Embeddings.Model, "EMBEDDING_MODEL")
	setString(&c.Embeddings.VectorsPath, "EMBEDDING_VECTORS")
	setBool(&c.Embeddings.Normalize, "EMBEDDING_NORMALIZE")

	setString(&c.Server.Addr, "KNOWLEDGE_MCP_ADDR")
	setString(&c.Server.LogFile, "MCP_LOG_FILE")
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func setInt(dst *int, env string) {
	if v := os.Getenv(env); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, env string) {
	if v := os.Getenv(env); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
