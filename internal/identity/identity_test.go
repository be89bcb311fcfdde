package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestWithUserRoundTrip(t *testing.T) {
	id := uuid.New()
	ctx := WithUser(context.Background(), id, "test@gmail.com")

	gotID, ok := UserID(ctx)
	assert.True(t, ok)
	assert.Equal(t, id, gotID)

	email, ok := UserEmail(ctx)
	assert.True(t, ok)
	assert.Equal(t, "test@gmail.com", email)
}

func TestUserIDMissing(t *testing.T) {
	_, ok := UserID(context.Background())
	assert.False(t, ok)
}
