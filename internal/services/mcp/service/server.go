package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/queenofhearts/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverName identifies the MCP server implementation.
	serverName = "queenofhearts-mcp"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Dependencies are the controllers the tools run against.
type Dependencies struct {
	Player domain.PlayerController
	Admin  domain.AdminController
}

// Server wraps the MCP server and its tool registrations.
type Server struct {
	mcpServer *mcp.Server
}

// New creates an MCP server with every wallet tool registered.
func New(deps Dependencies) (*Server, error) {
	if deps.Player == nil {
		return nil, errors.New("player controller is required")
	}
	if deps.Admin == nil {
		return nil, errors.New("admin controller is required")
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registerTools(mcpServer, deps)
	return &Server{mcpServer: mcpServer}, nil
}

func registerTools(server *mcp.Server, deps Dependencies) {
	mcp.AddTool(server, domain.PlayersListTool(), domain.PlayersListHandler(deps.Admin))
	mcp.AddTool(server, domain.TransfersListTool(), domain.TransfersListHandler(deps.Admin))
	mcp.AddTool(server, domain.PlayerCreateTool(), domain.PlayerCreateHandler(deps.Admin))
	mcp.AddTool(server, domain.GameAccountCreateTool(), domain.GameAccountCreateHandler(deps.Admin))
	mcp.AddTool(server, domain.WalletDepositTool(), domain.WalletDepositHandler(deps.Player))
	mcp.AddTool(server, domain.TransferRequestTool(), domain.TransferRequestHandler(deps.Player))
	mcp.AddTool(server, domain.TransferApproveTool(), domain.TransferApproveHandler(deps.Admin))
	mcp.AddTool(server, domain.LedgerResetTool(), domain.LedgerResetHandler(deps.Player, deps.Admin))
	mcp.AddTool(server, domain.UsernameSuggestTool(), domain.UsernameSuggestHandler(deps.Player))
}

// Serve starts the MCP server on stdio and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
