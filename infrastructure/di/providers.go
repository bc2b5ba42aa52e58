// Package di wires the application together with google/wire. The generated
// injector lives in wire_gen.go; regenerate with `wire ./infrastructure/di`.
package di

import (
	"context"

	"share-adage-backend/application/ports"
	"share-adage-backend/application/services"
	"share-adage-backend/infrastructure/config"
	"share-adage-backend/infrastructure/identity"
	"share-adage-backend/infrastructure/messaging"
	"share-adage-backend/infrastructure/persistence/dynamodb"
	"share-adage-backend/interfaces/http/rest"
	"share-adage-backend/interfaces/http/rest/handlers"
	"share-adage-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awscognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	awslambda "github.com/aws/aws-sdk-go-v2/service/lambda"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Adages   *services.AdageService
	Episodes *services.EpisodeService
	Hearts   *services.HeartService
	Users    *services.UserService

	Router *rest.Router
}

// AdagesTable and UsersTable are the two table ports, given distinct types
// so the injector can tell them apart.
type (
	AdagesTable ports.Table
	UsersTable  ports.Table
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideCognitoClient creates a Cognito client
func ProvideCognitoClient(awsCfg aws.Config) *awscognito.Client {
	return awscognito.NewFromConfig(awsCfg)
}

// ProvideLambdaClient creates a Lambda client
func ProvideLambdaClient(awsCfg aws.Config) *awslambda.Client {
	return awslambda.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideAdagesTable adapts the adages table
func ProvideAdagesTable(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) AdagesTable {
	return dynamodb.NewTable(client, cfg.AdagesTableName(), "adageId", logger)
}

// ProvideUsersTable adapts the users table
func ProvideUsersTable(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) UsersTable {
	return dynamodb.NewTable(client, cfg.UsersTableName(), "userId", logger)
}

// ProvideIdentityProvider creates the Cognito-backed identity provider
func ProvideIdentityProvider(client *awscognito.Client, cfg *config.Config, logger *zap.Logger) ports.IdentityProvider {
	return identity.NewCognitoProvider(client, cfg.CognitoClientID, cfg.CognitoUserPoolID, logger)
}

// ProvideAsyncInvoker creates the Lambda-backed async invoker
func ProvideAsyncInvoker(client *awslambda.Client, logger *zap.Logger) ports.AsyncInvoker {
	return messaging.NewLambdaInvoker(client, logger)
}

// ProvideEventPublisher creates the EventBridge-backed event publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return messaging.NewEventBridgePublisher(client, cfg.EventBusName, logger)
}

// ProvideRewardMetrics creates the CloudWatch-backed reward metrics
func ProvideRewardMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) ports.RewardMetrics {
	return observability.NewMetrics(client, cfg.MetricsNamespace(), logger)
}

// ProvideLedger creates the reward ledger
func ProvideLedger(users UsersTable, metrics ports.RewardMetrics, logger *zap.Logger) *services.Ledger {
	return services.NewLedger(users, metrics, logger)
}

// ProvideAdageService creates the adage service
func ProvideAdageService(
	adages AdagesTable,
	ledger *services.Ledger,
	invoker ports.AsyncInvoker,
	cfg *config.Config,
	logger *zap.Logger,
) *services.AdageService {
	return services.NewAdageService(
		adages,
		ledger,
		invoker,
		cfg.EpisodePostFunctionName(),
		cfg.MonthIndexName,
		logger,
	)
}

// ProvideEpisodeService creates the episode service
func ProvideEpisodeService(
	adages AdagesTable,
	users UsersTable,
	ledger *services.Ledger,
	events ports.EventPublisher,
	logger *zap.Logger,
) *services.EpisodeService {
	return services.NewEpisodeService(adages, users, ledger, events, logger)
}

// ProvideHeartService creates the heart service
func ProvideHeartService(users UsersTable, ledger *services.Ledger, logger *zap.Logger) *services.HeartService {
	return services.NewHeartService(users, ledger, logger)
}

// ProvideUserService creates the user service
func ProvideUserService(
	adages AdagesTable,
	users UsersTable,
	identityProvider ports.IdentityProvider,
	ledger *services.Ledger,
	events ports.EventPublisher,
	cfg *config.Config,
	logger *zap.Logger,
) *services.UserService {
	return services.NewUserService(
		adages,
		users,
		identityProvider,
		ledger,
		events,
		cfg.LoginIDIndexName,
		cfg.UserIDIndexName,
		logger,
	)
}

// ProvideRouter creates the HTTP router with all handlers attached
func ProvideRouter(
	adages *services.AdageService,
	episodes *services.EpisodeService,
	hearts *services.HeartService,
	users *services.UserService,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(
		handlers.NewAdageHandler(adages, logger),
		handlers.NewEpisodeHandler(episodes, logger),
		handlers.NewUserHandler(users, logger),
		handlers.NewHeartHandler(hearts, logger),
		logger,
	)
}
