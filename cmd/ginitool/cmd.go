package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Cfg holds the configuration and commands of one ginitool invocation.
type Cfg struct {
	*viper.Viper

	Root, infoCmd, readCmd, indexCmd *cobra.Command

	log *logrus.Logger
}

// InitializeConfig creates the command tree and binds every flag to a
// fresh configuration.
func InitializeConfig() *Cfg {
	cfg := &Cfg{
		Viper: viper.New(),
		log:   logrus.New(),
	}
	cfg.SetEnvPrefix("GINI")
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()

	cfg.Root = &cobra.Command{
		Use:   "ginitool",
		Short: "Inspect, read and index GINI satellite and radar products.",
		Long: `ginitool decodes the headers and image payloads of GINI products
produced by the NOAAPort satellite and radar mosaic feeds.

Every flag can also be set in a configuration file given with --config or
through an environment variable with the GINI_ prefix, for example
GINI_LOG_LEVEL=debug.`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.setConfig(); err != nil {
				return err
			}
			return cfg.setLogger(cmd.ErrOrStderr())
		},
	}

	cfg.infoCmd = &cobra.Command{
		Use:   "info FILE...",
		Short: "Print the decoded header of one or more products.",
		Long: `info prints the source, satellite, sector and physical element of each
product along with its grid, projection, coordinate axes, geographic bounds,
calibration and the full attribute list. --dump additionally prints every
decoded header field.`,
		Args:              cobra.MinimumNArgs(1),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.runInfo(cmd.OutOrStdout(), args)
		},
	}

	cfg.readCmd = &cobra.Command{
		Use:   "read FILE",
		Short: "Read a section of a product's image and print statistics.",
		Long: `read decodes the image payload of a product, selects the section given by
--origin, --shape and --stride (in time, y, x order) and prints its shape
along with the minimum, maximum, mean and standard deviation of the valid
values. Calibrated products are converted to physical values first.`,
		Args:              cobra.ExactArgs(1),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.runRead(cmd.OutOrStdout(), args[0])
		},
	}

	cfg.indexCmd = &cobra.Command{
		Use:   "index DIR",
		Short: "Index a directory of products and list those matching a query.",
		Long: `index discovers every GINI product under DIR, builds a spatial index of
their geographic bounds and lists the products that intersect --bbox and
match the element, sector, entity and time filters.`,
		Args:              cobra.ExactArgs(1),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.runIndex(cmd.OutOrStdout(), args[0])
		},
	}

	cfg.Root.AddCommand(cfg.infoCmd, cfg.readCmd, cfg.indexCmd)

	options := []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cfg.Root.PersistentFlags()},
		},
		{
			name: "log-level",
			usage: `
              log-level sets the logging threshold: one of trace, debug,
              info, warn or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{cfg.Root.PersistentFlags()},
		},
		{
			name: "log-format",
			usage: `
              log-format selects "text" or "json" log output.`,
			defaultVal: "text",
			flagsets:   []*pflag.FlagSet{cfg.Root.PersistentFlags()},
		},
		{
			name: "cache-limit",
			usage: `
              cache-limit is the largest decoded payload, in bytes, that a
              product keeps in memory between reads. 0 disables the cache.`,
			defaultVal: 4 << 20,
			flagsets:   []*pflag.FlagSet{cfg.Root.PersistentFlags()},
		},
		{
			name: "dump",
			usage: `
              dump prints every decoded header field.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{cfg.infoCmd.Flags()},
		},
		{
			name: "origin",
			usage: `
              origin is the first index of the section in time, y and x.
              Empty means the first element.`,
			defaultVal: []int{},
			flagsets:   []*pflag.FlagSet{cfg.readCmd.Flags()},
		},
		{
			name: "shape",
			usage: `
              shape is the number of elements of the section in time, y and x.
              Empty means the rest of the grid after origin.`,
			defaultVal: []int{},
			flagsets:   []*pflag.FlagSet{cfg.readCmd.Flags()},
		},
		{
			name: "stride",
			usage: `
              stride is the step between selected elements in time, y and x.
              Empty means 1 in every dimension.`,
			defaultVal: []int{},
			flagsets:   []*pflag.FlagSet{cfg.readCmd.Flags()},
		},
		{
			name: "values",
			usage: `
              values prints the section values, one grid row per line.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{cfg.readCmd.Flags()},
		},
		{
			name: "bbox",
			usage: `
              bbox limits the query to products intersecting
              "minlon,minlat,maxlon,maxlat". Empty matches everything.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cfg.indexCmd.Flags()},
		},
		{
			name: "element",
			usage: `
              element keeps only products with these physical element codes.`,
			defaultVal: []int{},
			flagsets:   []*pflag.FlagSet{cfg.indexCmd.Flags()},
		},
		{
			name: "sector",
			usage: `
              sector keeps only products with these sector codes.`,
			defaultVal: []int{},
			flagsets:   []*pflag.FlagSet{cfg.indexCmd.Flags()},
		},
		{
			name: "entity",
			usage: `
              entity keeps only products from these satellite or radar
              entity codes.`,
			defaultVal: []int{},
			flagsets:   []*pflag.FlagSet{cfg.indexCmd.Flags()},
		},
		{
			name: "since",
			usage: `
              since keeps only products acquired at or after this RFC 3339 time.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cfg.indexCmd.Flags()},
		},
		{
			name: "until",
			usage: `
              until keeps only products acquired at or before this RFC 3339 time.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cfg.indexCmd.Flags()},
		},
		{
			name: "workers",
			usage: `
              workers is the number of files parsed concurrently while
              indexing. 0 uses one worker per CPU.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{cfg.indexCmd.Flags()},
		},
	}

	for _, option := range options {
		for _, set := range option.flagsets {
			if option.shorthand == "" {
				switch v := option.defaultVal.(type) {
				case string:
					set.String(option.name, v, option.usage)
				case []int:
					set.IntSlice(option.name, v, option.usage)
				case bool:
					set.Bool(option.name, v, option.usage)
				case int:
					set.Int(option.name, v, option.usage)
				default:
					panic("invalid argument type")
				}
			} else {
				switch v := option.defaultVal.(type) {
				case string:
					set.StringP(option.name, option.shorthand, v, option.usage)
				case []int:
					set.IntSliceP(option.name, option.shorthand, v, option.usage)
				case bool:
					set.BoolP(option.name, option.shorthand, v, option.usage)
				case int:
					set.IntP(option.name, option.shorthand, v, option.usage)
				default:
					panic("invalid argument type")
				}
			}
			cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
	return cfg
}

// setConfig finds and reads in the configuration file, if there is one.
func (cfg *Cfg) setConfig() error {
	if cfgpath := cfg.GetString("config"); cfgpath != "" {
		cfg.SetConfigFile(cfgpath)
		if err := cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("ginitool: problem reading configuration file: %v", err)
		}
	}
	return nil
}

func (cfg *Cfg) setLogger(w io.Writer) error {
	level, err := logrus.ParseLevel(cfg.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("ginitool: %w", err)
	}
	cfg.log.SetOutput(w)
	cfg.log.SetLevel(level)

	switch f := cfg.GetString("log-format"); f {
	case "text", "":
		cfg.log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		cfg.log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("ginitool: invalid log-format %q", f)
	}
	return nil
}

// intSlice reads an integer list that may come from a flag, a
// configuration file list or a comma separated environment variable.
func (cfg *Cfg) intSlice(key string) ([]int, error) {
	v := cfg.Get(key)
	if v == nil {
		return nil, nil
	}
	if s, ok := v.(string); ok {
		fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '[' || r == ']' })
		out := make([]int, len(fields))
		for i, f := range fields {
			n, err := cast.ToIntE(f)
			if err != nil {
				return nil, fmt.Errorf("ginitool: invalid %s value %q: %v", key, s, err)
			}
			out[i] = n
		}
		return out, nil
	}
	out, err := cast.ToIntSliceE(v)
	if err != nil {
		return nil, fmt.Errorf("ginitool: invalid %s value %v: %v", key, v, err)
	}
	return out, nil
}
