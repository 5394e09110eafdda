// Command hedwig watches commit histories for keyword mentions.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/hedwig/internal/adapters/driven/auth"
	"github.com/custodia-labs/hedwig/internal/adapters/driven/config/file"
	"github.com/custodia-labs/hedwig/internal/adapters/driving/cli"
	"github.com/custodia-labs/hedwig/internal/connectors"
	"github.com/custodia-labs/hedwig/internal/core/services"
)

// version is set at build time.
var version = "dev"

func main() {
	store, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "hedwig: open config: %v\n", err)
		os.Exit(1)
	}

	factory := connectors.NewFactory(auth.NewHTTPClient)
	cli.SetServices(services.NewMonitorService(factory), store, auth.NewResolver(store))
	cli.SetVersion(version)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "hedwig: %v\n", err)
		os.Exit(1)
	}
}
