package cli

import (
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage stored settings and credentials",
	Long: `Reads and writes ~/.hedwig/config.toml.

Credentials are looked up per backend:
  github.token, github.username, github.password
  gitea.token,  gitea.username,  gitea.password`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List settings with secrets masked",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

var errNoConfigStore = errors.New("config store not configured")

// keyLister is implemented by stores that can enumerate their keys.
type keyLister interface {
	Keys() []string
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errNoConfigStore
	}
	val, ok := configStore.Get(args[0])
	if !ok {
		return errors.New("key not set: " + args[0])
	}
	cmd.Println(val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errNoConfigStore
	}
	key := args[0]
	var value any = args[1]
	if !isSecret(key) {
		value = parseValue(args[1])
	}
	if err := configStore.Set(key, value); err != nil {
		return err
	}
	cmd.Printf("Set %s in %s\n", key, configStore.Path())
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errNoConfigStore
	}
	lister, ok := configStore.(keyLister)
	if !ok {
		return errors.New("config store cannot list keys")
	}
	for _, key := range lister.Keys() {
		val, _ := configStore.Get(key)
		if isSecret(key) {
			cmd.Printf("%s = ****\n", key)
			continue
		}
		cmd.Printf("%s = %v\n", key, val)
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errNoConfigStore
	}
	cmd.Println(configStore.Path())
	return nil
}

// parseValue keeps booleans and integers typed in the TOML file.
func parseValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return s
}

func isSecret(key string) bool {
	return strings.HasSuffix(key, ".token") || strings.HasSuffix(key, ".password")
}
