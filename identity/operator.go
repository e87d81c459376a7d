package identity

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

const (
	minSecretStrengthScore = 3

	namePattern   = `^[a-zA-Z0-9_-]+$` // Alphanumeric with underscores and dashes
	minNameLength = 3
	maxNameLength = 32

	defaultQuota = 16 // environments an operator may hold open at once
)

var (
	ErrNameTooShort     = errors.New("operator name too short")
	ErrNameTooLong      = errors.New("operator name too long")
	ErrNameFormat       = errors.New("invalid operator name format")
	ErrWeakSecret       = errors.New("weak secret")
	ErrOperatorConflict = errors.New("operator name conflict")
	ErrOperatorNotFound = errors.New("operator not found")
)

var nameRegex = regexp.MustCompile(namePattern)

// hashCost is the bcrypt work factor of stored secrets.
var hashCost = 12

// Operator is a client allowed to run generation environments.
type Operator struct {
	ID         uuid.UUID `bson:"_id"`
	Name       string    `bson:"name"`
	SecretHash string    `bson:"secretHash"`
	Quota      int       `bson:"quota"`
	CreatedAt  time.Time `bson:"createdAt"`
}

// OperatorConfig holds the parameters of a new operator.
type OperatorConfig struct {
	ID          uuid.UUID
	Name        string
	PlainSecret string
}

// NewOperator validates the configuration and hashes the secret.
func NewOperator(config OperatorConfig) (*Operator, error) {
	if err := validateName(config.Name); err != nil {
		return nil, err
	}

	if err := validateSecret(config.PlainSecret); err != nil {
		return nil, err
	}

	secretHash, err := hashSecret(config.PlainSecret)
	if err != nil {
		return nil, err
	}

	return &Operator{
		ID:         config.ID,
		Name:       config.Name,
		SecretHash: secretHash,
		Quota:      defaultQuota,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// VerifySecret reports whether secret matches the stored hash.
func (o *Operator) VerifySecret(secret string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(o.SecretHash), []byte(secret))
	return err == nil
}

func validateName(name string) error {
	if len(name) < minNameLength {
		return ErrNameTooShort
	}
	if len(name) > maxNameLength {
		return ErrNameTooLong
	}
	if !nameRegex.MatchString(name) {
		return ErrNameFormat
	}
	return nil
}

// validateSecret rejects secrets zxcvbn scores below minSecretStrengthScore.
func validateSecret(secret string) error {
	result := zxcvbn.PasswordStrength(secret, nil)
	if result.Score < minSecretStrengthScore {
		return ErrWeakSecret
	}
	return nil
}

func hashSecret(secret string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(secret), hashCost)
	return string(bytes), err
}
