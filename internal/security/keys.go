package security

import (
	"fmt"
	"os"
	"strings"
)

// KeySource represents where an API key was loaded from
type KeySource string

const (
	// KeySourceEnvironment indicates the key was loaded from environment variables
	KeySourceEnvironment KeySource = "environment"
	// KeySourceConfig indicates the key was loaded from config file
	KeySourceConfig KeySource = "config"
	// KeySourceNotSet indicates no key was found
	KeySourceNotSet KeySource = "not_set"
)

// GeminiKeyEnvVars are checked in order before falling back to the config file.
var GeminiKeyEnvVars = []string{
	"NEXUS_GEMINI_KEY", // Preferred, explicit
	"GEMINI_API_KEY",   // Generic Gemini
	"GOOGLE_API_KEY",   // Generic Google
}

// LoadedKey represents a loaded API key with metadata
type LoadedKey struct {
	Value  string    // The actual API key
	Source KeySource // Where the key was loaded from
}

// String returns a safe representation that never contains the full key.
func (k *LoadedKey) String() string {
	if !k.IsSet() {
		return "LoadedKey{Source: not_set}"
	}
	return fmt.Sprintf("LoadedKey{Source: %s, Value: %s}", k.Source, MaskKey(k.Value))
}

// IsSet returns true if the key has a value
func (k *LoadedKey) IsSet() bool {
	return k != nil && k.Value != ""
}

// GetAPIKey loads an API key, environment variables first, then the config
// file value.
func GetAPIKey(envVarNames []string, configValue string) *LoadedKey {
	for _, envVar := range envVarNames {
		if value := strings.TrimSpace(os.Getenv(envVar)); value != "" {
			return &LoadedKey{Value: value, Source: KeySourceEnvironment}
		}
	}

	if configValue != "" {
		return &LoadedKey{Value: configValue, Source: KeySourceConfig}
	}

	return &LoadedKey{Source: KeySourceNotSet}
}

// GetGeminiKey loads the Gemini API key from environment or config.
// The explicit api.gemini_key field wins over the legacy api.api_key.
func GetGeminiKey(configGeminiKey, configLegacyKey string) *LoadedKey {
	configValue := configGeminiKey
	if configValue == "" {
		configValue = configLegacyKey
	}
	return GetAPIKey(GeminiKeyEnvVars, configValue)
}

// MaskKey masks an API key for safe logging/display
// Shows first 4 and last 4 characters with asterisks in between
//
// Example: "AIza1234567890abcdef" -> "AIza************cdef"
func MaskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}

// ValidateKeyFormat performs a sanity check on an API key. It catches
// obviously wrong values such as empty strings and template placeholders.
func ValidateKeyFormat(key string) error {
	if key == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	if len(key) < 10 {
		return fmt.Errorf("API key too short (expected at least 10 characters, got %d)", len(key))
	}

	lowerKey := strings.ToLower(key)
	placeholders := []string{
		"your-api-key",
		"your_api_key",
		"api_key",
		"<insert-key>",
		"changeme",
	}
	for _, placeholder := range placeholders {
		if strings.Contains(lowerKey, placeholder) {
			return fmt.Errorf("API key appears to be a placeholder: %s", placeholder)
		}
	}

	return nil
}
