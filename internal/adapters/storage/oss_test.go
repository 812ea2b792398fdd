package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKeyShape(t *testing.T) {
	key := ObjectKey("members")
	assert.True(t, strings.HasPrefix(key, "members/"))
	assert.True(t, strings.HasSuffix(key, ".webp"))

	// Trailing slashes on the folder are tolerated
	key = ObjectKey("/members/")
	assert.True(t, strings.HasPrefix(key, "members/"))
	assert.NotContains(t, key, "//")
}

func TestObjectKeyUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		key := ObjectKey("members")
		assert.False(t, seen[key])
		seen[key] = true
	}
}

func TestKeyFromURL(t *testing.T) {
	key, err := keyFromURL("https://bucket.oss-ap-northeast-2.aliyuncs.com/members/1712345678901-a1b2c3d4.webp")
	require.NoError(t, err)
	assert.Equal(t, "members/1712345678901-a1b2c3d4.webp", key)

	_, err = keyFromURL("https://bucket.oss-ap-northeast-2.aliyuncs.com/")
	assert.Error(t, err)
}
