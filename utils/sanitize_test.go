package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "Great work!", SanitizeText("  <b>Great</b> work!<script>alert(1)</script> "))
	assert.Equal(t, "Tom & Jerry's show", SanitizeText("Tom & Jerry's show"))
	assert.Equal(t, "Tom & Jerry", SanitizeText("Tom &amp; Jerry"))
	assert.Equal(t, "", SanitizeText("<img src=x onerror=alert(1)>"))
}
