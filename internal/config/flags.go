package config

import "flag"

// Options are the command-line settings layered on top of the config file.
type Options struct {
	ConfigPath   string
	DatabasePath string
	Port         int
	ReportDir    string
	ReportHours  int
	JSONLogs     bool
	Verbose      bool
}

// ParseFlags parses command-line flags.
func ParseFlags() Options {
	var opts Options
	flag.StringVar(&opts.ConfigPath, "config", "config.yaml", "Path to YAML configuration file")
	flag.StringVar(&opts.DatabasePath, "db", "", "Database path (overrides config)")
	flag.IntVar(&opts.Port, "port", 0, "Web interface port (overrides config)")
	flag.StringVar(&opts.ReportDir, "report", "", "Generate a report into this directory and exit")
	flag.IntVar(&opts.ReportHours, "report-hours", 24, "Report period in hours")
	flag.BoolVar(&opts.JSONLogs, "json-logs", false, "Emit logs as JSON")
	flag.BoolVar(&opts.Verbose, "verbose", false, "Enable debug logging")
	flag.Parse()
	return opts
}

// Apply merges command-line overrides into the configuration.
func (o Options) Apply(cfg *Config) {
	if o.DatabasePath != "" {
		cfg.DatabasePath = o.DatabasePath
	}
	if o.Port != 0 {
		cfg.Dashboard.Port = o.Port
	}
}
