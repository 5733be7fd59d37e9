package source

import (
	"context"
	"log/slog"

	"github.com/alumniconnect/client-go/internal/kvstore"
)

// UseMock resolves the runtime data-source mode. A "useMockApi" entry in the
// key-value store overrides the configured default, mirroring the local
// override the web client honored.
func UseMock(ctx context.Context, kv kvstore.Store, configDefault bool, logger *slog.Logger) bool {
	if kv == nil {
		return configDefault
	}
	return kvstore.GetJSONDefault(ctx, kv, kvstore.KeyUseMockAPI, configDefault, logger)
}
