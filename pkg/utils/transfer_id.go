package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateTransferID creates a standardized, human-readable transfer record ID.
// Format: transfer-{shipSymbolWithoutAgentPrefix}-{8charHexUUID}
//
// Example:
//   - Input: shipSymbol="AGENT-HAULER-1"
//   - Output: "transfer-HAULER-1-a3f8e2b1"
//
// The generated IDs are human-readable, show the receiving ship at a glance,
// and stay globally unique via the UUID suffix
func GenerateTransferID(shipSymbol string) string {
	return "transfer-" + stripAgentPrefix(shipSymbol) + "-" + generateShortUUID()
}

// stripAgentPrefix removes the agent prefix from ship symbols.
// Assumes ship format is: {AGENT_PREFIX}-{SHIP_TYPE}-{SHIP_NUMBER}
// where AGENT_PREFIX can contain hyphens (e.g., "MY-AGENT")
//
// Strategy: Keep the last two hyphen-separated segments (type and number)
//   - "AGENT-HAULER-1" -> "HAULER-1"
//   - "MY-AGENT-MINER-2" -> "MINER-2"
//   - "SCOUT-1" -> "SCOUT-1" (no change if only 2 parts)
//   - "SINGLE" -> "SINGLE" (no change if no hyphens)
func stripAgentPrefix(shipSymbol string) string {
	parts := strings.Split(shipSymbol, "-")

	// If 2 or fewer parts, return as-is (no agent prefix to strip)
	if len(parts) <= 2 {
		return shipSymbol
	}

	// Keep the last 2 parts (ship type and number)
	return strings.Join(parts[len(parts)-2:], "-")
}

// generateShortUUID creates an 8-character hex string from a UUID.
// This provides sufficient uniqueness while keeping IDs compact
func generateShortUUID() string {
	id := uuid.New()
	// Remove hyphens and take first 8 characters
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
