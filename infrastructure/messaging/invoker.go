// Package messaging implements the fire-and-forget collaborators: async
// invocation of sibling Lambda functions and best-effort EventBridge events.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"share-adage-backend/application/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	awslambda "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"go.uber.org/zap"
)

// LambdaInvoker invokes sibling functions asynchronously. The invocation is
// at most once: the caller does not wait for or verify the outcome, and the
// triggering write is never rolled back on downstream failure.
type LambdaInvoker struct {
	client *awslambda.Client
	logger *zap.Logger
}

// NewLambdaInvoker creates a Lambda-backed async invoker.
func NewLambdaInvoker(client *awslambda.Client, logger *zap.Logger) *LambdaInvoker {
	return &LambdaInvoker{client: client, logger: logger}
}

var _ ports.AsyncInvoker = (*LambdaInvoker)(nil)

// InvokeAsync fires functionName with the JSON-encoded payload.
func (i *LambdaInvoker) InvokeAsync(ctx context.Context, functionName string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	_, err = i.client.Invoke(ctx, &awslambda.InvokeInput{
		FunctionName:   aws.String(functionName),
		InvocationType: types.InvocationTypeEvent,
		Payload:        body,
	})
	if err != nil {
		i.logger.Error("async invoke failed",
			zap.String("function", functionName),
			zap.Error(err),
		)
		return fmt.Errorf("invoke %s: %w", functionName, err)
	}

	i.logger.Info("async invoke dispatched", zap.String("function", functionName))
	return nil
}
