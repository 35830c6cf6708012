package services

import (
	"context"
	"testing"
	"time"

	"mernspace-auth/models"
	"mernspace-auth/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTokenJanitor(t *testing.T) {
	svc, db, _ := newTokenService(t)
	user := testutil.SeedUser(t, db, "a@b.com", models.CustomerRole, "password1")
	require.NoError(t, db.Omit("User").Create(&models.RefreshToken{UserID: user.ID, ExpiresAt: time.Now().Add(-time.Minute)}).Error)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunTokenJanitor(ctx, svc, 10*time.Millisecond, testutil.NewLogger())
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return testutil.RefreshTokenCount(t, db, user.ID) == 0
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after cancellation")
	}
}
