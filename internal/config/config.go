package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Delivery sink constants
	SinkDirectory = "dir"
	SinkS3        = "s3"

	// Default values
	DefaultPort              = 8080
	DefaultHost              = "127.0.0.1"
	DefaultLogLevel          = "info"
	DefaultMaxFileSize       = 100 * 1024 * 1024 // 100MB
	DefaultMaxGeneratedPages = 100
	DefaultOutputSubdir      = "output"

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the PDF toolkit server
type Config struct {
	// Server configuration
	Mode string // "server" or "stdio"
	Host string
	Port int

	// Document configuration
	InputDirectory    string
	OutputDirectory   string
	MaxFileSize       int64 // Maximum input file size in bytes
	MaxGeneratedPages int   // Upper bound for blank document generation

	// Delivery configuration
	Sink       string // "dir" or "s3"
	S3Bucket   string
	S3Prefix   string
	S3Region   string
	S3Endpoint string

	// Static credentials, env only; the default AWS chain is used when empty
	S3AccessKey string
	S3SecretKey string

	// Logging configuration
	LogLevel     string
	LogFile      string
	LogPretty    bool
	AxiomToken   string
	AxiomOrgID   string
	AxiomDataset string

	// Application configuration
	Version    string
	ServerName string
	EnvFile    string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		// Fallback to current directory if working directory cannot be determined
		currentDir = "."
	}

	return &Config{
		Mode:              ModeStdio, // Default to stdio mode for MCP compatibility
		Host:              DefaultHost,
		Port:              DefaultPort,
		InputDirectory:    currentDir,
		OutputDirectory:   filepath.Join(currentDir, DefaultOutputSubdir),
		MaxFileSize:       DefaultMaxFileSize,
		MaxGeneratedPages: DefaultMaxGeneratedPages,
		Sink:              SinkDirectory,
		LogLevel:          DefaultLogLevel,
		Version:           "1.0.0",
		ServerName:        "mcp-pdf-toolkit",
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	defineCommandLineFlags(cfg)
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	// The env file has to be loaded before viper snapshots the environment
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	setupViperEnvironment(cfg)
	bindFlagsToViper()
	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.InputDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.InputDirectory); err == nil {
			cfg.InputDirectory = expandedPath
		}
	}
	if cfg.OutputDirectory == "" {
		cfg.OutputDirectory = filepath.Join(cfg.InputDirectory, DefaultOutputSubdir)
	}
	if expandedPath, err := filepath.Abs(cfg.OutputDirectory); err == nil {
		cfg.OutputDirectory = expandedPath
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadEnvFile loads KEY=VALUE pairs from the configured env file into the
// process environment. Variables already set are left untouched.
func loadEnvFile() error {
	path := os.Getenv("MCP_PDF_ENVFILE")
	if f := pflag.Lookup("envfile"); f != nil && f.Changed {
		path = f.Value.String()
	}
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("cannot load env file %s: %w", path, err)
	}
	return nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("MCP_PDF")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("dir", cfg.InputDirectory)
	viper.SetDefault("outdir", "")
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("maxpages", cfg.MaxGeneratedPages)
	viper.SetDefault("sink", cfg.Sink)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("logpretty", cfg.LogPretty)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for HTTP (SSE) server")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("dir", cfg.InputDirectory, "Directory containing input files")
	pflag.String("outdir", "", "Directory receiving generated documents (default <dir>/output)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum input file size in bytes")
	pflag.Int("maxpages", cfg.MaxGeneratedPages, "Maximum number of pages for generated blank documents")
	pflag.String("sink", cfg.Sink, "Delivery sink: 'dir' writes to --outdir, 's3' uploads to --s3bucket")
	pflag.String("s3bucket", "", "S3 bucket for the s3 sink")
	pflag.String("s3prefix", "", "Key prefix for the s3 sink")
	pflag.String("s3region", "", "AWS region for the s3 sink (default from AWS config)")
	pflag.String("s3endpoint", "", "Custom S3 endpoint (MinIO, localstack)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.String("logfile", "", "Write rotated logs to this file")
	pflag.Bool("logpretty", cfg.LogPretty, "Human readable console logs")
	pflag.String("envfile", "", "Load environment variables from this file")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	for _, name := range []string{
		"mode", "host", "port", "dir", "outdir", "maxfilesize", "maxpages",
		"sink", "s3bucket", "s3prefix", "s3region", "s3endpoint",
		"loglevel", "logfile", "logpretty",
	} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}
	// Axiom credentials are environment-only
	_ = viper.BindEnv("axiomtoken")
	_ = viper.BindEnv("axiomorg")
	_ = viper.BindEnv("axiomdataset")
	_ = viper.BindEnv("s3accesskey")
	_ = viper.BindEnv("s3secretkey")
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nMCP PDF Toolkit - A Model Context Protocol server for converting and "+
			"reorganizing PDF documents\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                         "+
			"# stdio mode, current directory (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/docs --outdir=/tmp/out   "+
			"# custom input and output directories\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=server --port=8081               # SSE server with /metrics\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --sink=s3 --s3bucket=my-bucket          # upload results to S3\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  MCP_PDF_MODE          Server mode\n")
		fmt.Fprintf(os.Stderr, "  MCP_PDF_HOST          Server host\n")
		fmt.Fprintf(os.Stderr, "  MCP_PDF_PORT          Server port\n")
		fmt.Fprintf(os.Stderr, "  MCP_PDF_DIR           Input directory\n")
		fmt.Fprintf(os.Stderr, "  MCP_PDF_OUTDIR        Output directory\n")
		fmt.Fprintf(os.Stderr, "  MCP_PDF_SINK          Delivery sink\n")
		fmt.Fprintf(os.Stderr, "  MCP_PDF_LOGLEVEL      Log level\n")
		fmt.Fprintf(os.Stderr, "  MCP_PDF_MAXFILESIZE   Maximum file size\n")
		fmt.Fprintf(os.Stderr, "  MCP_PDF_S3ACCESSKEY   Static S3 access key (with MCP_PDF_S3SECRETKEY)\n")
		fmt.Fprintf(os.Stderr, "  MCP_PDF_AXIOMTOKEN    Forward logs to Axiom (with MCP_PDF_AXIOMDATASET)\n")
		fmt.Fprintf(os.Stderr, "  MCP_PDF_ENVFILE       Env file loaded at startup\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.InputDirectory = viper.GetString("dir")
	cfg.OutputDirectory = viper.GetString("outdir")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.MaxGeneratedPages = viper.GetInt("maxpages")
	cfg.Sink = viper.GetString("sink")
	cfg.S3Bucket = viper.GetString("s3bucket")
	cfg.S3Prefix = viper.GetString("s3prefix")
	cfg.S3Region = viper.GetString("s3region")
	cfg.S3Endpoint = viper.GetString("s3endpoint")
	cfg.S3AccessKey = viper.GetString("s3accesskey")
	cfg.S3SecretKey = viper.GetString("s3secretkey")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.LogFile = viper.GetString("logfile")
	cfg.LogPretty = viper.GetBool("logpretty")
	cfg.AxiomToken = viper.GetString("axiomtoken")
	cfg.AxiomOrgID = viper.GetString("axiomorg")
	cfg.AxiomDataset = viper.GetString("axiomdataset")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate mode
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	// Validate port range (only for server mode)
	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	// Validate input directory
	if c.InputDirectory == "" {
		return errors.New("input directory cannot be empty")
	}

	// Check if input directory exists, create if it doesn't
	if err := ensureDirectory(c.InputDirectory); err != nil {
		return fmt.Errorf("cannot use input directory %s: %w", c.InputDirectory, err)
	}

	// Validate max file size
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	if c.MaxGeneratedPages < 1 {
		return errors.New("maximum generated pages must be at least 1")
	}

	// Validate sink
	switch c.Sink {
	case SinkDirectory:
		if c.OutputDirectory == "" {
			return errors.New("output directory cannot be empty")
		}
		if err := ensureDirectory(c.OutputDirectory); err != nil {
			return fmt.Errorf("cannot use output directory %s: %w", c.OutputDirectory, err)
		}
	case SinkS3:
		if c.S3Bucket == "" {
			return errors.New("s3 sink requires a bucket")
		}
	default:
		return fmt.Errorf("invalid sink: %s (must be one of: dir, s3)", c.Sink)
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

func ensureDirectory(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return os.MkdirAll(dir, DefaultDirPerm)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory")
	}
	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, InputDirectory: %s, OutputDirectory: %s, "+
		"Sink: %s, LogLevel: %s, MaxFileSize: %d, MaxGeneratedPages: %d}",
		c.Mode, c.Host, c.Port, c.InputDirectory, c.OutputDirectory,
		c.Sink, c.LogLevel, c.MaxFileSize, c.MaxGeneratedPages)
}

// IsServerMode returns true if the server is running in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the server is running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
