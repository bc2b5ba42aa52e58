//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"share-adage-backend/infrastructure/config"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideCognitoClient,
	ProvideLambdaClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideAdagesTable,
	ProvideUsersTable,
	ProvideIdentityProvider,
	ProvideAsyncInvoker,
	ProvideEventPublisher,
	ProvideRewardMetrics,
	ProvideLedger,
	ProvideAdageService,
	ProvideEpisodeService,
	ProvideHeartService,
	ProvideUserService,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
