package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearGeminiEnv(t *testing.T) {
	for _, name := range GeminiKeyEnvVars {
		t.Setenv(name, "")
	}
}

func TestGetGeminiKeyPriority(t *testing.T) {
	clearGeminiEnv(t)

	k := GetGeminiKey("", "")
	assert.False(t, k.IsSet())
	assert.Equal(t, KeySourceNotSet, k.Source)

	k = GetGeminiKey("", "legacy-key-123456")
	assert.Equal(t, "legacy-key-123456", k.Value)
	assert.Equal(t, KeySourceConfig, k.Source)

	k = GetGeminiKey("config-key-123456", "legacy-key-123456")
	assert.Equal(t, "config-key-123456", k.Value)

	t.Setenv("GOOGLE_API_KEY", "google-key-123456")
	t.Setenv("NEXUS_GEMINI_KEY", "nexus-key-123456")
	k = GetGeminiKey("config-key-123456", "")
	assert.Equal(t, "nexus-key-123456", k.Value)
	assert.Equal(t, KeySourceEnvironment, k.Source)
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "(not set)", MaskKey(""))
	assert.Equal(t, "*****", MaskKey("short"))
	assert.Equal(t, "AIza****cdef", MaskKey("AIza1234cdef"))
}

func TestLoadedKeyStringHidesValue(t *testing.T) {
	k := &LoadedKey{Value: "AIzaSyVerySecretValue", Source: KeySourceEnvironment}
	assert.NotContains(t, k.String(), "VerySecret")
}

func TestValidateKeyFormat(t *testing.T) {
	assert.Error(t, ValidateKeyFormat(""))
	assert.Error(t, ValidateKeyFormat("abc"))
	assert.Error(t, ValidateKeyFormat("your-api-key-here"))
	assert.NoError(t, ValidateKeyFormat("AIzaSyA1b2C3d4E5f6G7h8"))
}
