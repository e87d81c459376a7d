package service

import (
	"testing"

	"github.com/beka-birhanu/vinom-pcg/identity"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "correct-horse-battery-staple-42"

func TestAuth(t *testing.T) {
	logger, _ := test.NewNullLogger()
	repo := newMemOperators()
	tokens := &stubTokenizer{}
	auth, err := NewAuth(repo, tokens, logger)
	require.NoError(t, err)

	require.NoError(t, auth.Register("level_bot", secret))
	assert.ErrorIs(t, auth.Register("level_bot", secret), identity.ErrOperatorConflict)
	assert.ErrorIs(t, auth.Register("x", secret), identity.ErrNameTooShort)

	operator, token, err := auth.SignIn("level_bot", secret)
	require.NoError(t, err)
	assert.Equal(t, "level_bot", operator.Name)
	assert.Equal(t, "token-for-"+operator.ID.String(), token)
	assert.Equal(t, operator.Name, tokens.claims["name"])
	assert.Equal(t, tokenTTL, tokens.ttl)

	_, _, err = auth.SignIn("level_bot", "wrong-secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = auth.SignIn("nobody", secret)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestNewAuth(t *testing.T) {
	_, err := NewAuth(nil, &stubTokenizer{}, logrus.New())
	assert.Error(t, err)
	_, err = NewAuth(newMemOperators(), nil, logrus.New())
	assert.Error(t, err)
}
