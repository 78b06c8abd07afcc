package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	original := []string{Version, Commit, BuildTime}
	defer func() { Version, Commit, BuildTime = original[0], original[1], original[2] }()

	Version, Commit, BuildTime = "1.2.0", "abc1234", "2026-03-04T05:06:07Z"

	assert.Equal(t, "1.2.0 (abc1234) 2026-03-04T05:06:07Z "+runtime.GOOS+"/"+runtime.GOARCH, String())
}
