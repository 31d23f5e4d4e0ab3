//go:build integration

package app

import (
	"os"
	"testing"

	"github.com/brandonleon/carbsmart/internal/testutil"
)

// TestMain terminates the containers started by the integration tests.
func TestMain(m *testing.M) {
	os.Exit(testutil.RunWithSharedContainers(m))
}
