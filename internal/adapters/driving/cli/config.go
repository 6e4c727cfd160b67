package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change the configuration",
	Long: `Show and change ~/.graphscope/config.toml.

GRAPHSCOPE_* environment variables override the file, so a value set
here may not be the one in effect.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Write one value to the config file",
	Long: `Validate a value and write it to the config file.

Lists such as scopes are comma-separated; durations use Go syntax (30s, 5m).`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	services, err := buildServices(Options{})
	if err != nil {
		return err
	}

	data, err := services.Config.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	cmd.Printf("# %s\n", services.Config.Path())
	cmd.Print(string(data))
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	services, err := buildServices(Options{})
	if err != nil {
		return err
	}
	cmd.Println(services.Config.Path())
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	services, err := buildServices(Options{})
	if err != nil {
		return err
	}

	value, ok := services.Config.Get(args[0])
	if !ok {
		if !slices.Contains(services.ConfigKeys, args[0]) {
			return unknownKeyError(args[0], services.ConfigKeys)
		}
		cmd.Println("(not set in the file; the default or environment applies)")
		return nil
	}

	switch v := value.(type) {
	case []string:
		cmd.Println(strings.Join(v, ","))
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}
		cmd.Println(strings.Join(parts, ","))
	default:
		cmd.Println(v)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	services, err := buildServices(Options{})
	if err != nil {
		return err
	}

	if err := services.Config.Set(args[0], args[1]); err != nil {
		return err
	}

	cmd.Printf("Set %s in %s\n", args[0], services.Config.Path())
	return nil
}

func unknownKeyError(key string, keys []string) error {
	return fmt.Errorf("unknown key %q (valid keys: %s)", key, strings.Join(keys, ", "))
}
