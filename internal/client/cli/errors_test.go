package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/contractlens/internal/client/client"
	"github.com/dmitrijs2005/contractlens/internal/client/services"
	"github.com/dmitrijs2005/contractlens/internal/common"
	"github.com/dmitrijs2005/contractlens/internal/logging"
)

func TestPresent(t *testing.T) {
	ctx := context.Background()
	a := &App{log: logging.NewNop(), errOut: &bytes.Buffer{}}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", &services.ValidationError{Message: services.MsgUnsupportedFile}, services.MsgUnsupportedFile},
		{"not logged in", fmt.Errorf("guard: %w", common.ErrNotLoggedIn), "not logged in - run 'contractlens login' first"},
		{"backend detail", fmt.Errorf("upload contract: %w", &client.APIError{StatusCode: 400, Detail: "Duplicate upload"}), "Duplicate upload"},
		{"no detail", &client.APIError{StatusCode: 500}, MsgUploadFailed},
		{"transport", fmt.Errorf("%w: dial tcp", client.ErrUnavailable), MsgUploadFailed},
		{"already presented", &displayError{msg: "Incorrect email or password", err: errors.New("x")}, "Incorrect email or password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.present(ctx, tt.err, MsgUploadFailed)
			assert.Equal(t, tt.want, message(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}

	assert.NoError(t, a.present(ctx, nil, MsgUploadFailed))
}

func TestPresent_ExpiredSessionIsSilent(t *testing.T) {
	a := &App{log: logging.NewNop(), errOut: &bytes.Buffer{}}
	unauthorized := &client.APIError{StatusCode: 401, Detail: "Could not validate credentials"}

	assert.Equal(t, "Could not validate credentials", message(a.present(context.Background(), unauthorized, MsgListFailed)))

	a.onSessionExpired(context.Background())
	assert.Empty(t, message(a.present(context.Background(), unauthorized, MsgListFailed)))
	assert.Contains(t, a.errOut.(*bytes.Buffer).String(), MsgSessionExpired)
	assert.False(t, a.needLogin.Load(), "one-shot mode never forces a login")

	a.interactive = true
	a.onSessionExpired(context.Background())
	assert.True(t, a.needLogin.Load())
}

func TestMessage_PlainError(t *testing.T) {
	assert.Equal(t, "boom", message(errors.New("boom")))
}
