package shared

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskify-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSetAndGetTraceID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	traceID := GetTraceID(SetTraceID(ctx))
	assert.Len(t, traceID, 2*TraceIDLength)
	_, err := hex.DecodeString(traceID)
	assert.NoError(t, err)

	assert.Empty(t, GetTraceID(context.WithValue(ctx, TraceIDKey, 123)))
}

func TestGenerateTraceID_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, 200)
	for i := 0; i < 200; i++ {
		id := generateTraceID()
		_, dup := seen[id]
		assert.False(t, dup, "duplicate trace ID %s", id)
		seen[id] = struct{}{}
	}
}

func TestPrincipalContext(t *testing.T) {
	t.Parallel()

	_, ok := PrincipalFrom(context.Background())
	assert.False(t, ok)

	_, ok = PrincipalFrom(WithPrincipal(context.Background(), domain.Principal{}))
	assert.False(t, ok, "zero principal is not authenticated")

	p := domain.Principal{UserID: uuid.New(), Email: "ada@example.com", Role: domain.RoleAdmin}
	got, ok := PrincipalFrom(WithPrincipal(context.Background(), p))
	assert.True(t, ok)
	assert.Equal(t, p, got)
}
