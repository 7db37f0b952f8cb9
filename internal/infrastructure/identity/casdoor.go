package identity

import (
	"context"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/rs/zerolog"

	"github.com/summercamp/campfund/internal/core/domain"
	"github.com/summercamp/campfund/internal/core/ports"
)

// CasdoorConfig mirrors the settings of a Casdoor application.
type CasdoorConfig struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Certificate  string
	Organization string
	Application  string
}

type tokenParser interface {
	ParseJwtToken(token string) (*casdoorsdk.Claims, error)
}

// CasdoorVerifier accepts a Casdoor-issued id token whose user email
// matches the requested email.
type CasdoorVerifier struct {
	parser tokenParser
	logger zerolog.Logger
}

func NewCasdoorVerifier(cfg CasdoorConfig, logger zerolog.Logger) *CasdoorVerifier {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Certificate,
		cfg.Organization,
		cfg.Application,
	)
	return &CasdoorVerifier{parser: client, logger: logger}
}

func (v *CasdoorVerifier) Mode() string { return "casdoor" }

func (v *CasdoorVerifier) Verify(_ context.Context, proof ports.IdentityProof) (string, error) {
	if proof.IDToken == "" {
		return "", domain.ErrInvalidCredentials
	}

	claims, err := v.parser.ParseJwtToken(proof.IDToken)
	if err != nil {
		v.logger.Debug().Err(err).Msg("casdoor token rejected")
		return "", domain.ErrInvalidCredentials
	}
	if claims.User.Email == "" || !strings.EqualFold(claims.User.Email, proof.Email) {
		v.logger.Debug().Str("email", proof.Email).Msg("casdoor token issued for a different email")
		return "", domain.ErrInvalidCredentials
	}
	return proof.Email, nil
}
