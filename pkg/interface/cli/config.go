package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/WangYihang/Domain-Reputation-Checker/pkg/common"
	"github.com/jessevdk/go-flags"
)

var (
	// ErrNoSource is returned when neither websites_file nor -w is given
	ErrNoSource = errors.New("one of websites_file or -w/--website is required")
	// ErrConflictingSources is returned when both input sources are given
	ErrConflictingSources = errors.New("websites_file and -w/--website are mutually exclusive")
	// ErrNoPresetList is returned when the preset_list argument is missing
	ErrNoPresetList = errors.New("the required argument preset_list was not provided")
	// ErrNoDomains is returned when the inputs resolve to no domains
	ErrNoDomains = errors.New("no websites provided to check")
)

// Config holds all application configuration
type Config struct {
	Args struct {
		PresetList   string `positional-arg-name:"preset_list" description:"File with the preset list of unsafe domains (one per line)"`
		WebsitesFile string `positional-arg-name:"websites_file" description:"File with the domains to check (one per line)"`
	} `positional-args:"yes"`

	// Input/Output
	Websites []string `short:"w" long:"website" description:"Domains to check, as -w a.com b.com or repeated -w (excludes websites_file)"`
	Output   string   `short:"o" long:"output" description:"Output file for the report (default: stdout)"`
	Format   string   `long:"format" description:"Report format" choice:"text" choice:"json" default:"text"`

	// Lookups
	Concurrency int    `long:"concurrency" description:"Number of domains checked at once" default:"1"`
	Timeout     int    `long:"timeout" description:"HTTP timeout in seconds (default: 10, or the config file value)"`
	ConfigFile  string `long:"config" description:"YAML config file with provider overrides"`
	EnvFile     string `long:"env-file" description:"File with API keys as KEY=VALUE lines" default:".env"`

	// Real HTTP timeout duration (not parsed from flags directly)
	TimeoutDuration time.Duration

	// Observability
	Verbose     bool   `short:"v" long:"verbose" description:"Enable debug logging"`
	MetricsFile string `long:"metrics-file" description:"Write prometheus metrics of the run to this file"`
	Progress    bool   `long:"progress" description:"Show a progress bar and a summary on stderr"`
	Version     bool   `long:"version" description:"Print version information and exit"`
}

// ParseFlags parses command line flags
func ParseFlags() (*Config, error) {
	cfg, err := ParseArgs(os.Args[1:])
	if err != nil {
		if flags.WroteHelp(err) {
			// Help text is carried by the error
			fmt.Fprintln(os.Stdout, err)
			os.Exit(0)
		}
		return nil, err
	}
	return cfg, nil
}

// ParseArgs parses and validates args
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}

	parser := flags.NewParser(cfg, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = common.Name
	parser.Usage = "[OPTIONS] preset_list [websites_file | -w domain [domain...]]"

	rest, err := parser.ParseArgs(args)
	if err != nil {
		return nil, err
	}
	rest = cfg.foldWebsites(args, rest)
	if len(rest) > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", rest)
	}

	// Convert timeouts
	cfg.TimeoutDuration = time.Duration(cfg.Timeout) * time.Second

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// foldWebsites treats positionals written after -w as further domains,
// so "preset.txt -w a.com b.com" checks both. go-flags binds one value
// per -w and would otherwise take b.com as websites_file.
func (c *Config) foldWebsites(args, rest []string) []string {
	if len(c.Websites) == 0 || c.Args.WebsitesFile == "" {
		return rest
	}
	flagAt := websiteFlagIndex(args)
	if flagAt < 0 || lastIndex(args, c.Args.WebsitesFile) < flagAt {
		return rest
	}
	c.Websites = append(c.Websites, c.Args.WebsitesFile)
	c.Websites = append(c.Websites, rest...)
	c.Args.WebsitesFile = ""
	return nil
}

// websiteFlagIndex returns the position of the first -w/--website flag
func websiteFlagIndex(args []string) int {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if arg == "--website" || strings.HasPrefix(arg, "--website=") || strings.HasPrefix(arg, "-w") {
			return i
		}
	}
	return -1
}

func lastIndex(args []string, value string) int {
	for i := len(args) - 1; i >= 0; i-- {
		if args[i] == value {
			return i
		}
	}
	return -1
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Version {
		return nil
	}

	if c.Args.PresetList == "" {
		return ErrNoPresetList
	}

	hasFile := c.Args.WebsitesFile != ""
	hasInline := len(c.Websites) > 0
	if hasFile && hasInline {
		return ErrConflictingSources
	}
	if !hasFile && !hasInline {
		return ErrNoSource
	}

	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be > 0, got %d", c.Concurrency)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %d", c.Timeout)
	}

	return nil
}
