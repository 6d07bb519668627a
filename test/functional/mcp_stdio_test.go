package functional_test

import (
	"context"
	"os"
	"os/exec"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/fleetview/internal/domain/dashboard"
	"github.com/rpggio/fleetview/internal/domain/vehicle"
	"github.com/stretchr/testify/require"
)

// newStdioSession starts the server binary in stdio mode over an in-memory
// database seeded with the sample fleet.
func newStdioSession(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()

	binaryPath := "./bin/fleetview"
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		binaryPath = "../../bin/fleetview"
		if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
			t.Skip("Server binary not found. Run 'go build -o bin/fleetview ./cmd/server' first.")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	cmd := exec.CommandContext(ctx, binaryPath)
	cmd.Env = append(os.Environ(),
		"FLEETVIEW_TRANSPORT_MODE=stdio",
		"FLEETVIEW_DB_PATH=:memory:",
		"FLEETVIEW_SOURCE_KIND=sqlite",
	)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: cmd}, nil)
	if err != nil {
		cancel()
		t.Fatalf("Failed to connect: %v", err)
	}

	t.Cleanup(func() {
		session.Close()
		cancel()
	})
	return session
}

func TestStdioFunctional_ListAndStats(t *testing.T) {
	session := newStdioSession(t)

	var view vehicle.View
	callTool(t, session, "list_vehicles", map[string]any{"status": "active", "pageSize": 2}, &view)
	require.Equal(t, 5, view.TotalItems)
	require.Equal(t, 3, view.TotalPages)
	require.Len(t, view.Rows, 2)

	var stats dashboard.Stats
	callTool(t, session, "get_fleet_stats", map[string]any{}, &stats)
	require.Equal(t, 8, stats.TotalVehicles)
	require.Equal(t, 6, stats.TotalDrivers)
}

func TestStdioFunctional_InvalidConfiguration(t *testing.T) {
	session := newStdioSession(t)

	callToolError(t, session, "list_drivers", map[string]any{"pageSize": -1})
}
