package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hedwig/internal/adapters/driven/config/file"
	"github.com/custodia-labs/hedwig/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/hedwig/internal/adapters/driving/mcp"
)

var (
	mcpRepositories string
	mcpKeywords     string
	mcpPort         int
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start a Model Context Protocol server that lets assistants scan the
projects in the repositories file.

Tools:
  monitor        scan one project and return the ranked keyword counts
  list_projects  list the configured projects

By default the server speaks JSON-RPC over stdio. Use --port to serve
streamable HTTP instead.

Examples:
  hedwig mcp serve
  hedwig mcp serve -r repositories.toml --port 8080`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	f := mcpServeCmd.Flags()
	f.StringVarP(&mcpRepositories, "repositories", "r", file.DefaultProjectsFile, "repository definitions (.toml or .json)")
	f.StringVarP(&mcpKeywords, "keywords", "k", "", "keyword table (.toml or .json); built-in table when empty")
	f.IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	ports, err := mcpPorts()
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if mcpPort > 0 {
		addr := fmt.Sprintf(":%d", mcpPort)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}

func mcpPorts() (*mcp.Ports, error) {
	if monitorService == nil {
		return nil, errors.New("monitor service not configured")
	}

	projects, err := file.LoadProjects(mcpRepositories)
	if err != nil {
		return nil, err
	}
	keywords, err := file.LoadKeywords(mcpKeywords)
	if err != nil {
		return nil, err
	}

	return &mcp.Ports{
		Monitor:     monitorService,
		Projects:    projects,
		Keywords:    keywords,
		Credentials: credentialResolver,
		Runs:        memory.NewReportStore(memory.DefaultReportCapacity),
	}, nil
}
