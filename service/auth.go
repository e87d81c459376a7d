package service

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-pcg/identity"
	"github.com/beka-birhanu/vinom-pcg/service/i"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const tokenTTL = 24 * time.Hour

var ErrInvalidCredentials = errors.New("invalid operator name or secret")

var _ i.Authenticator = &Auth{}

// Auth registers operators and issues their access tokens.
type Auth struct {
	operatorRepo i.OperatorRepo
	tokenizer    i.Tokenizer
	logger       logrus.FieldLogger
}

// NewAuth creates the operator authentication service.
func NewAuth(operatorRepo i.OperatorRepo, tokenizer i.Tokenizer, logger logrus.FieldLogger) (*Auth, error) {
	if operatorRepo == nil || tokenizer == nil {
		return nil, errors.New("auth needs an operator repository and a tokenizer")
	}
	return &Auth{
		operatorRepo: operatorRepo,
		tokenizer:    tokenizer,
		logger:       logger.WithField("component", "AUTH"),
	}, nil
}

// Register implements i.Authenticator.
func (a *Auth) Register(name, secret string) error {
	operator, err := identity.NewOperator(identity.OperatorConfig{
		ID:          uuid.New(),
		Name:        name,
		PlainSecret: secret,
	})
	if err != nil {
		return err
	}

	if err := a.operatorRepo.Save(operator); err != nil {
		return err
	}

	a.logger.WithField("operator", operator.ID).Info("registered operator")
	return nil
}

// SignIn implements i.Authenticator.
func (a *Auth) SignIn(name, secret string) (*identity.Operator, string, error) {
	operator, err := a.operatorRepo.ByName(name)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !operator.VerifySecret(secret) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		"operatorID": operator.ID,
		"name":       operator.Name,
	}, tokenTTL)
	if err != nil {
		return nil, "", err
	}

	return operator, token, nil
}
