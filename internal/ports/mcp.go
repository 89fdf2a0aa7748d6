package ports

import (
	"context"

	"github.com/mvidal/spur/internal/domain"
)

// ActivityProvider is the service surface exposed to the MCP adapter.
// Destructive operations (bucket deletion, import) are absent: they
// require interactive confirmation, which the MCP surface cannot
// provide.
type ActivityProvider interface {
	// Buckets returns the current bucket mapping.
	Buckets() domain.Buckets

	// Pick selects one activity at random from the named bucket and
	// records it in history.
	Pick(ctx context.Context, minutes int) (*domain.Pick, error)

	// AddActivityLabel appends an activity to an existing bucket.
	AddActivityLabel(ctx context.Context, minutes int, label string) error

	// History returns recent picks, most recent first.
	History(ctx context.Context, limit int) ([]*domain.Pick, error)
}

// MCPHandler is implemented by the MCP server adapter.
type MCPHandler interface {
	// Start begins serving MCP requests and blocks until done.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error
}
