package cmd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"specinput/internal/config"
	"specinput/internal/model"
	"specinput/internal/output"
	"specinput/internal/platform"
	"specinput/internal/scheduler"
	"specinput/internal/version"
)

// mcpServer wraps the MCP server with the platform provider and the single
// automation loop it controls.
type mcpServer struct {
	provider *platform.Provider
	setups   *config.Manager
	loop     *scheduler.Loop

	mu     sync.Mutex
	runs   int
	target string
	mcp    *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
}

// newMCPServer creates and configures an MCP server with all specinput tools.
func newMCPServer() (*mcpServer, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}
	dir, err := config.DefaultDir()
	if err != nil {
		return nil, err
	}
	setups, err := config.NewManager(dir)
	if err != nil {
		return nil, err
	}

	s := &mcpServer{
		provider: provider,
		setups:   setups,
		loop:     scheduler.New(provider.Sender),
	}
	s.mcp = mcpserver.NewMCPServer("specinput", version.Version)
	s.registerTools()
	return s, nil
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List windows that can receive keystrokes, with their IDs, titles, classes, and desktops"),
			mcp.WithString("title", mcp.Description("Filter by window title substring")),
		),
		s.handleListWindows,
	)

	s.mcp.AddTool(
		mcp.NewTool("send_keys",
			mcp.WithDescription("Send a key sequence to a window once, without starting a loop"),
			mcp.WithString("window_id", mcp.Description("Target window ID from list_windows"), mcp.Required()),
			mcp.WithString("keys", mcp.Description("Space-separated key sequence, e.g. 'w a s d'"), mcp.Required()),
			mcp.WithNumber("hold", mcp.Description("Hold time in seconds per key (default 0.1)")),
			mcp.WithNumber("repeat", mcp.Description("Presses per key (default 1)")),
			mcp.WithNumber("wait", mcp.Description("Pause in seconds after each key")),
		),
		s.handleSendKeys,
	)

	s.mcp.AddTool(
		mcp.NewTool("start",
			mcp.WithDescription("Start the key-sending loop against a window. Fails if a loop is already active."),
			mcp.WithString("window_id", mcp.Description("Target window ID from list_windows")),
			mcp.WithString("keys", mcp.Description("Space-separated key sequence")),
			mcp.WithString("interval", mcp.Description("Interval between cycles, e.g. '5s' or '2m,30s'")),
			mcp.WithString("setup", mcp.Description("Load window, keys, and interval from a saved setup; explicit arguments override it")),
		),
		s.handleStart,
	)

	s.mcp.AddTool(
		mcp.NewTool("stop",
			mcp.WithDescription("Stop the key-sending loop. Fails if no loop is active."),
		),
		s.handleStop,
	)

	s.mcp.AddTool(
		mcp.NewTool("status",
			mcp.WithDescription("Report whether the loop is active, its target window, and how many cycles have run"),
		),
		s.handleStatus,
	)

	s.mcp.AddTool(
		mcp.NewTool("setups",
			mcp.WithDescription("List the saved setups by name"),
		),
		s.handleSetups,
	)
}

func (s *mcpServer) handleListWindows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := request.GetString("title", "")
	windows, err := s.provider.Lister.ListWindows(ctx, platform.ListOptions{Title: title})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return yamlResult(output.ListResult{Count: len(windows), Windows: windows})
}

func (s *mcpServer) handleSendKeys(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	windowID, err := request.RequireString("window_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	keysArg, err := request.RequireString("keys")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	keys, err := model.ParseKeys(keysArg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	hold := request.GetFloat("hold", 0)
	repeat := request.GetInt("repeat", 1)
	wait := request.GetFloat("wait", 0)
	if repeat < 1 {
		return mcp.NewToolResultError(fmt.Sprintf("repeat must be at least 1, got %d", repeat)), nil
	}
	for i := range keys {
		if hold > 0 {
			keys[i].Hold = time.Duration(hold * float64(time.Second))
		}
		keys[i].Repeat = repeat
		if wait > 0 {
			keys[i].Wait = time.Duration(wait * float64(time.Second))
		}
	}

	if err := s.provider.Sender.SendKeys(ctx, windowID, keys); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("sent %v to window %s", model.KeyNames(keys), windowID)), nil
}

func (s *mcpServer) handleStart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loop.Active() {
		return mcp.NewToolResultError("loop already active; call stop first"), nil
	}

	var setup model.Setup
	if name := request.GetString("setup", ""); name != "" {
		loaded, err := s.setups.Load(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		setup = loaded
	}
	if id := request.GetString("window_id", ""); id != "" {
		setup.WindowID = id
	}
	if keysArg := request.GetString("keys", ""); keysArg != "" {
		keys, err := model.ParseKeys(keysArg)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		setup.Keys = keys
	}
	if intervalArg := request.GetString("interval", ""); intervalArg != "" {
		interval, err := config.ParseInterval(intervalArg)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		setup.Interval = interval
	}

	err := s.loop.Start(scheduler.Config{
		WindowID: setup.WindowID,
		Keys:     setup.Keys,
		Interval: setup.Interval,
		OnCycle: func(n int) {
			s.mu.Lock()
			s.runs = n
			s.mu.Unlock()
		},
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.runs = 0
	s.target = setup.WindowID
	return mcp.NewToolResultText(fmt.Sprintf("loop started: window %s every %s", setup.WindowID, config.FormatInterval(setup.Interval))), nil
}

func (s *mcpServer) handleStop(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !s.loop.Active() {
		return mcp.NewToolResultError("no loop is active"), nil
	}
	s.loop.Stop()

	s.mu.Lock()
	runs := s.runs
	s.target = ""
	s.mu.Unlock()
	return mcp.NewToolResultText(fmt.Sprintf("loop stopped after %d cycles", runs)), nil
}

func (s *mcpServer) handleStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	runs := s.runs
	target := s.target
	s.mu.Unlock()

	return yamlResult(map[string]interface{}{
		"active":    s.loop.Active(),
		"window_id": target,
		"runs":      runs,
	})
}

func (s *mcpServer) handleSetups(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.setups.List()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return yamlResult(map[string]interface{}{"count": len(names), "setups": names})
}

// yamlResult serializes v to YAML text for the tool response.
func yamlResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
