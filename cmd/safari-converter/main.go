package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nrudnyk/SafariConverterLib/internal/converter"
	"github.com/nrudnyk/SafariConverterLib/internal/fetcher"
	"github.com/nrudnyk/SafariConverterLib/internal/models"
	"github.com/nrudnyk/SafariConverterLib/internal/parser"
)

var (
	cfgFile string
	cfg     models.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "safari-converter",
	Short: "Convert ad-blocker filter lists to Safari content blocker format",
	Long: `A tool that converts AdGuard/uBlock filter lists into the trigger/action
JSON format consumed by Safari and other WebKit content blockers.`,
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert filter lists to content blocker JSON",
	RunE:  runConvert,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured filter lists",
	RunE:  runList,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	RunE:  runInit,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./configs/filter_lists.toml)")

	convertCmd.Flags().StringP("output", "o", "./output", "output directory")
	convertCmd.Flags().Bool("dry-run", false, "parse and convert without writing files")
	convertCmd.Flags().Bool("combined", true, "generate combined output file")
	convertCmd.Flags().Bool("advanced-blocking", false, "enable script and scriptlet actions")
	convertCmd.Flags().Bool("verbose", false, "verbose output")

	rootCmd.AddCommand(convertCmd, listCmd, initCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("filter_lists")
		viper.SetConfigType("toml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
	}

	// Set defaults
	viper.SetDefault("http.timeout", "30s")
	viper.SetDefault("http.retries", 3)
	viper.SetDefault("output.max_entries_per_file", converter.MaxEntries)
	viper.SetDefault("output.generate_combined", true)
	viper.SetDefault("conversion.advanced_blocking", false)
	viper.SetDefault("conversion.max_entries", converter.MaxEntries)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logrus.WithError(err).Error("reading config")
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		logrus.WithError(err).Error("parsing config")
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	outputDir, _ := cmd.Flags().GetString("output")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	generateCombined, _ := cmd.Flags().GetBool("combined")
	verbose, _ := cmd.Flags().GetBool("verbose")

	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	convCfg := cfg.Conversion
	if cmd.Flags().Changed("advanced-blocking") {
		convCfg.AdvancedBlocking, _ = cmd.Flags().GetBool("advanced-blocking")
	}

	enabledLists := cfg.EnabledLists()
	if len(enabledLists) == 0 {
		return fmt.Errorf("no enabled filter lists found in config")
	}

	logrus.WithField("lists", len(enabledLists)).Info("converting filter lists")
	if dryRun {
		logrus.Info("dry run, no files will be written")
	}

	ctx := context.Background()
	f := fetcher.New(cfg.HTTP)
	splitter := converter.NewSplitter(cfg.Output.MaxEntriesPerFile)

	var allEntries []models.BlockerEntry
	totalSkips := make(map[string]int)

	for _, list := range enabledLists {
		log := logrus.WithField("list", list.Name)

		data, err := f.Fetch(ctx, list.URL)
		if err != nil {
			log.WithError(err).Error("fetching list")
			continue
		}
		log.WithField("bytes", len(data)).Debug("downloaded")

		// Fresh parser and converter per list for accurate stats
		p := parser.New()
		rules, err := p.Parse(bytes.NewReader(data))
		if err != nil {
			log.WithError(err).Error("parsing list")
			continue
		}
		pStats := p.Stats()

		c := converter.New(convCfg)
		entries := c.Convert(rules)
		cStats := c.Stats()

		log.WithFields(logrus.Fields{
			"entries": len(entries),
			"skipped": pStats.Unsupported + cStats.Skipped,
		}).Info("converted")

		for reason, count := range pStats.SkipReasons {
			totalSkips[reason] += count
		}
		for reason, count := range cStats.SkipReasons {
			totalSkips[reason] += count
		}

		if !dryRun {
			for name, part := range splitter.Split(entries, list.Name) {
				if err := writeEntries(outputDir, name+".json", part); err != nil {
					log.WithError(err).Error("writing output")
				}
			}
		}

		allEntries = append(allEntries, entries...)
	}

	for reason, count := range totalSkips {
		logrus.WithFields(logrus.Fields{
			"reason": reason,
			"count":  count,
		}).Info("skipped rules")
	}

	if generateCombined && len(allEntries) > 0 {
		allEntries = converter.Deduplicate(allEntries)
		logrus.WithField("entries", len(allEntries)).Info("combined output after deduplication")

		if !dryRun {
			for name, part := range splitter.Split(allEntries, "combined") {
				if err := writeEntries(outputDir, name+".json", part); err != nil {
					logrus.WithError(err).Error("writing combined output")
				}
			}
		}
	}

	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	fmt.Println("Configured filter lists:")
	for _, list := range cfg.Lists {
		status := "enabled"
		if !list.Enabled {
			status = "disabled"
		}
		fmt.Printf("  [%s] %s\n", status, list.Name)
		fmt.Printf("         %s\n\n", list.URL)
	}
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := "./configs/filter_lists.toml"
	if cfgFile != "" {
		configPath = cfgFile
	}

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	defaultConfig := `# Safari content blocker converter configuration

# HTTP client settings
[http]
timeout = "30s"
retries = 3

# Output settings
[output]
max_entries_per_file = 50000
generate_combined = true

# Conversion settings
[conversion]
advanced_blocking = false
max_entries = 50000

# Filter lists to convert
# Set enabled = false to skip a list

[[lists]]
name = "adguard-base"
url = "https://filters.adtidy.org/extension/safari/filters/2.txt"
enabled = true

[[lists]]
name = "adguard-tracking"
url = "https://filters.adtidy.org/extension/safari/filters/3.txt"
enabled = true

[[lists]]
name = "easylist"
url = "https://easylist.to/easylist/easylist.txt"
enabled = true

[[lists]]
name = "easyprivacy"
url = "https://easylist.to/easylist/easyprivacy.txt"
enabled = false
`

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return err
	}

	fmt.Printf("Created config file: %s\n", configPath)
	return nil
}

// writeEntries writes the canonical serialized form, so a written file can be
// patched entry-by-entry later
func writeEntries(dir, filename string, entries []models.BlockerEntry) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	serialized, err := converter.SerializeEntries(entries)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, filename), []byte(serialized), 0644)
}
