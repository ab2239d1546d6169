package e2e

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"vitamed/domain"
	"vitamed/infrastructure/http/client"
)

// These tests exercise a deployed relay end to end, upstream included.
// They only run when E2E_RELAY_ADDR is set.
func loadE2E(t *testing.T) Config {
	_ = godotenv.Load()
	cfg, err := LoadConfig()
	require.NoError(t, err)
	if cfg.RelayAddr == "" {
		t.Skip("E2E_RELAY_ADDR not set")
	}
	return cfg
}

func Test_Relay_Health_Probe(t *testing.T) {
	cfg := loadE2E(t)
	req := require.New(t)

	response, err := http.Get(cfg.RelayAddr + "/")
	req.NoError(err)
	defer response.Body.Close()
	req.Equal(http.StatusOK, response.StatusCode)
}

func Test_Relay_Generates_A_Reply(t *testing.T) {
	cfg := loadE2E(t)
	req := require.New(t)

	relay := client.NewRelayClient(slog.Default(), cfg.RelayAddr, 90*time.Second)
	text, err := relay.Generate(context.Background(), "In one sentence, what is aspirin?",
		[]domain.Turn{})
	req.NoError(err)
	req.NotEmpty(text)
	if cfg.DebugJSON {
		t.Logf("relay reply: %s", text)
	}
}
