//go:build integration

package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

// shared holds one lazily started container per backend for a test binary.
type shared struct {
	once      sync.Once
	container *Container
	err       error
	start     func(context.Context) (*Container, error)
}

func (s *shared) get(ctx context.Context) (*Container, error) {
	s.once.Do(func() {
		s.container, s.err = s.start(ctx)
	})
	return s.container, s.err
}

var (
	sharedMongo    = &shared{start: SetupMongoDB}
	sharedPostgres = &shared{start: SetupPostgres}
)

// SharedMongoURI returns the URI of the package's MongoDB container,
// starting it on first use.
func SharedMongoURI(t *testing.T) string {
	t.Helper()
	c, err := sharedMongo.get(context.Background())
	if err != nil {
		t.Fatalf("mongodb container: %v", err)
	}
	return c.URI
}

// SharedPostgresURI returns the DSN of the package's PostgreSQL container,
// starting it on first use.
func SharedPostgresURI(t *testing.T) string {
	t.Helper()
	c, err := sharedPostgres.get(context.Background())
	if err != nil {
		t.Fatalf("postgres container: %v", err)
	}
	return c.URI
}

// RunWithSharedContainers runs the tests and terminates whichever shared
// containers they started. Use it from TestMain:
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.RunWithSharedContainers(m))
//	}
func RunWithSharedContainers(m *testing.M) int {
	code := m.Run()

	ctx := context.Background()
	for _, s := range []*shared{sharedMongo, sharedPostgres} {
		if err := s.container.Cleanup(ctx); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to cleanup shared container: %v\n", err)
		}
	}
	return code
}

// SanitizeDBName turns a test name into a unique MongoDB database name.
func SanitizeDBName(testName string) string {
	sanitized := strings.NewReplacer("/", "_", "\\", "_", " ", "_", ".", "_").Replace(testName)
	if len(sanitized) > 50 {
		sanitized = sanitized[:50]
	}
	return fmt.Sprintf("%s_%d", sanitized, time.Now().UnixNano()%1000000)
}
