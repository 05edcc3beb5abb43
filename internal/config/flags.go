package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagStrict  = flag.Bool("strict", false, "Reject faces that appear before any group")
	flagCharset = flag.String("charset", "", "Source text charset (utf-8, latin1, euc-kr, ...)")
	flagEntry   = flag.String("entry", "", "Bundle entry to import")
	flagWorkers = flag.Int("workers", 0, "Parallel parses for batch imports")
	flagLogFile = flag.String("log-file", "", "Write logs to this file as well")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments remaining after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagStrict {
		cfg.Parse.RequireGroup = true
	}
	if *flagCharset != "" {
		cfg.Parse.Charset = *flagCharset
	}
	if *flagEntry != "" {
		cfg.Bundle.Entry = *flagEntry
	}
	if *flagWorkers > 0 {
		cfg.Import.Workers = *flagWorkers
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
