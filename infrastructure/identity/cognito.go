// Package identity adapts Amazon Cognito to the IdentityProvider port.
package identity

import (
	"context"
	"errors"
	"fmt"

	"share-adage-backend/application/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	cognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"go.uber.org/zap"
)

// CognitoProvider implements ports.IdentityProvider on a Cognito user pool.
type CognitoProvider struct {
	client     *cognito.Client
	clientID   string
	userPoolID string
	logger     *zap.Logger
}

// NewCognitoProvider creates a Cognito-backed identity provider.
func NewCognitoProvider(client *cognito.Client, clientID, userPoolID string, logger *zap.Logger) *CognitoProvider {
	return &CognitoProvider{
		client:     client,
		clientID:   clientID,
		userPoolID: userPoolID,
		logger:     logger,
	}
}

var _ ports.IdentityProvider = (*CognitoProvider)(nil)

// SignUp registers a new user and returns the stable subject identifier.
func (p *CognitoProvider) SignUp(ctx context.Context, loginID, password string) (string, error) {
	out, err := p.client.SignUp(ctx, &cognito.SignUpInput{
		ClientId: aws.String(p.clientID),
		Username: aws.String(loginID),
		Password: aws.String(password),
	})
	if err != nil {
		p.logger.Error("cognito SignUp failed", zap.String("loginId", loginID), zap.Error(err))
		return "", fmt.Errorf("cognito sign up: %w", err)
	}
	return aws.ToString(out.UserSub), nil
}

// ConfirmSignUp confirms a pending registration with the emailed code.
// An expired code is reported as ports.ErrCodeExpired.
func (p *CognitoProvider) ConfirmSignUp(ctx context.Context, loginID, code string) error {
	_, err := p.client.ConfirmSignUp(ctx, &cognito.ConfirmSignUpInput{
		ClientId:         aws.String(p.clientID),
		Username:         aws.String(loginID),
		ConfirmationCode: aws.String(code),
	})
	if err != nil {
		var expired *types.ExpiredCodeException
		if errors.As(err, &expired) {
			return ports.ErrCodeExpired
		}
		p.logger.Error("cognito ConfirmSignUp failed", zap.String("loginId", loginID), zap.Error(err))
		return fmt.Errorf("cognito confirm sign up: %w", err)
	}
	return nil
}

// ResendConfirmationCode requests a fresh confirmation code.
func (p *CognitoProvider) ResendConfirmationCode(ctx context.Context, loginID string) error {
	_, err := p.client.ResendConfirmationCode(ctx, &cognito.ResendConfirmationCodeInput{
		ClientId: aws.String(p.clientID),
		Username: aws.String(loginID),
	})
	if err != nil {
		p.logger.Error("cognito ResendConfirmationCode failed", zap.String("loginId", loginID), zap.Error(err))
		return fmt.Errorf("cognito resend confirmation code: %w", err)
	}
	return nil
}

// InitiateAuth authenticates with loginID/password and returns the tokens.
func (p *CognitoProvider) InitiateAuth(ctx context.Context, loginID, password string) (*ports.AuthTokens, error) {
	out, err := p.client.InitiateAuth(ctx, &cognito.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(p.clientID),
		AuthParameters: map[string]string{
			"USERNAME": loginID,
			"PASSWORD": password,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("cognito initiate auth: %w", err)
	}
	if out.AuthenticationResult == nil {
		return nil, fmt.Errorf("cognito initiate auth: empty authentication result")
	}
	return &ports.AuthTokens{
		IDToken:      aws.ToString(out.AuthenticationResult.IdToken),
		AccessToken:  aws.ToString(out.AuthenticationResult.AccessToken),
		RefreshToken: aws.ToString(out.AuthenticationResult.RefreshToken),
	}, nil
}

// DeleteUser removes the account owning the access token.
func (p *CognitoProvider) DeleteUser(ctx context.Context, accessToken string) error {
	_, err := p.client.DeleteUser(ctx, &cognito.DeleteUserInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		p.logger.Error("cognito DeleteUser failed", zap.Error(err))
		return fmt.Errorf("cognito delete user: %w", err)
	}
	return nil
}

// AdminResetPassword sends a password-reset code to the user.
func (p *CognitoProvider) AdminResetPassword(ctx context.Context, loginID string) error {
	_, err := p.client.AdminResetUserPassword(ctx, &cognito.AdminResetUserPasswordInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(loginID),
	})
	if err != nil {
		p.logger.Error("cognito AdminResetUserPassword failed", zap.String("loginId", loginID), zap.Error(err))
		return fmt.Errorf("cognito admin reset password: %w", err)
	}
	return nil
}

// ConfirmForgotPassword completes a password reset with the emailed code.
func (p *CognitoProvider) ConfirmForgotPassword(ctx context.Context, loginID, code, password string) error {
	_, err := p.client.ConfirmForgotPassword(ctx, &cognito.ConfirmForgotPasswordInput{
		ClientId:         aws.String(p.clientID),
		Username:         aws.String(loginID),
		ConfirmationCode: aws.String(code),
		Password:         aws.String(password),
	})
	if err != nil {
		p.logger.Error("cognito ConfirmForgotPassword failed", zap.String("loginId", loginID), zap.Error(err))
		return fmt.Errorf("cognito confirm forgot password: %w", err)
	}
	return nil
}
