package persistent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("project_imgs", "My Cover!.PNG", "image/png")

	assert.True(t, strings.HasPrefix(key, "project_imgs/"), key)
	assert.True(t, strings.HasSuffix(key, "-my-cover.png"), key)
	assert.Equal(t, "project_imgs", FolderOf(key))
}

func TestObjectKeyWithoutExtensionUsesContentType(t *testing.T) {
	key := ObjectKey("", "cover", "image/png")

	assert.NotContains(t, key, "/")
	assert.True(t, strings.HasSuffix(key, "-cover.png"), key)
}

func TestObjectKeysAreUnique(t *testing.T) {
	assert.NotEqual(t,
		ObjectKey("journey_imgs", "a.png", "image/png"),
		ObjectKey("journey_imgs", "a.png", "image/png"))
}

func TestFolderOf(t *testing.T) {
	assert.Equal(t, "", FolderOf("x.png"))
	assert.Equal(t, "a/b", FolderOf("a/b/x.png"))
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "hello-world", SanitizeName("  Hello World  "))
	assert.Equal(t, "a_b-c", SanitizeName("a_b-c"))
	assert.Equal(t, "", SanitizeName("!!!"))
}
