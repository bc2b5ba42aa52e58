// Package dynamodb implements the Table port on DynamoDB. Both logical
// tables (adages, users) use a composite key: a table-specific partition key
// attribute plus the "key" sort attribute discriminating record kinds.
package dynamodb

import (
	"context"
	"fmt"

	"share-adage-backend/application/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// sortKeyAttr is the discriminator attribute shared by both tables.
const sortKeyAttr = "key"

// guestMarkerAttr flags guest-authored rows; absent on registered rows.
const guestMarkerAttr = "byGuest"

// Table adapts one DynamoDB table to the ports.Table interface.
type Table struct {
	client    *awsdynamodb.Client
	tableName string
	pkAttr    string
	logger    *zap.Logger
}

// NewTable creates a Table adapter. pkAttr is the partition key attribute
// name ("adageId" for the adages table, "userId" for the users table).
func NewTable(client *awsdynamodb.Client, tableName, pkAttr string, logger *zap.Logger) *Table {
	return &Table{
		client:    client,
		tableName: tableName,
		pkAttr:    pkAttr,
		logger:    logger,
	}
}

var _ ports.Table = (*Table)(nil)

func (t *Table) key(partitionKey, sortKey string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		t.pkAttr:    &types.AttributeValueMemberS{Value: partitionKey},
		sortKeyAttr: &types.AttributeValueMemberS{Value: sortKey},
	}
}

// Get loads one item into out. A missing item is (false, nil), not an error.
func (t *Table) Get(ctx context.Context, partitionKey, sortKey string, out interface{}, opts ...ports.QueryOption) (bool, error) {
	options := applyOptions(opts)

	input := &awsdynamodb.GetItemInput{
		TableName: aws.String(t.tableName),
		Key:       t.key(partitionKey, sortKey),
	}

	if len(options.Projection) > 0 {
		expr, err := expression.NewBuilder().
			WithProjection(projectionOf(options.Projection)).
			Build()
		if err != nil {
			return false, fmt.Errorf("build projection: %w", err)
		}
		input.ProjectionExpression = expr.Projection()
		input.ExpressionAttributeNames = expr.Names()
	}

	result, err := t.client.GetItem(ctx, input)
	if err != nil {
		t.logger.Error("GetItem failed",
			zap.String("table", t.tableName),
			zap.String("partitionKey", partitionKey),
			zap.String("sortKey", sortKey),
			zap.Error(err),
		)
		return false, fmt.Errorf("get item: %w", err)
	}
	if len(result.Item) == 0 {
		return false, nil
	}

	if err := attributevalue.UnmarshalMap(result.Item, out); err != nil {
		return false, fmt.Errorf("unmarshal item: %w", err)
	}
	return true, nil
}

// Put writes one item, replacing any existing item with the same key.
func (t *Table) Put(ctx context.Context, item interface{}) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}

	_, err = t.client.PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName: aws.String(t.tableName),
		Item:      av,
	})
	if err != nil {
		t.logger.Error("PutItem failed",
			zap.String("table", t.tableName),
			zap.Error(err),
		)
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// Add atomically increments a numeric attribute by delta using an ADD
// update expression. DynamoDB initializes the attribute to delta when it is
// absent, so the first increment needs no separate create step.
func (t *Table) Add(ctx context.Context, partitionKey, sortKey, attribute string, delta int) error {
	expr, err := expression.NewBuilder().
		WithUpdate(expression.Add(expression.Name(attribute), expression.Value(delta))).
		Build()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	_, err = t.client.UpdateItem(ctx, &awsdynamodb.UpdateItemInput{
		TableName:                 aws.String(t.tableName),
		Key:                       t.key(partitionKey, sortKey),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		t.logger.Error("UpdateItem ADD failed",
			zap.String("table", t.tableName),
			zap.String("partitionKey", partitionKey),
			zap.String("sortKey", sortKey),
			zap.String("attribute", attribute),
			zap.Error(err),
		)
		return fmt.Errorf("add to %s: %w", attribute, err)
	}
	return nil
}

// SetString overwrites a single string attribute of an item.
func (t *Table) SetString(ctx context.Context, partitionKey, sortKey, attribute, value string) error {
	expr, err := expression.NewBuilder().
		WithUpdate(expression.Set(expression.Name(attribute), expression.Value(value))).
		Build()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	_, err = t.client.UpdateItem(ctx, &awsdynamodb.UpdateItemInput{
		TableName:                 aws.String(t.tableName),
		Key:                       t.key(partitionKey, sortKey),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		t.logger.Error("UpdateItem SET failed",
			zap.String("table", t.tableName),
			zap.String("partitionKey", partitionKey),
			zap.String("sortKey", sortKey),
			zap.String("attribute", attribute),
			zap.Error(err),
		)
		return fmt.Errorf("set %s: %w", attribute, err)
	}
	return nil
}

// Delete removes one item. Deleting an absent item succeeds.
func (t *Table) Delete(ctx context.Context, partitionKey, sortKey string) error {
	_, err := t.client.DeleteItem(ctx, &awsdynamodb.DeleteItemInput{
		TableName: aws.String(t.tableName),
		Key:       t.key(partitionKey, sortKey),
	})
	if err != nil {
		t.logger.Error("DeleteItem failed",
			zap.String("table", t.tableName),
			zap.String("partitionKey", partitionKey),
			zap.String("sortKey", sortKey),
			zap.Error(err),
		)
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// QueryPrefix loads every item of a partition whose sort key begins with
// sortKeyPrefix, in sort-key order.
func (t *Table) QueryPrefix(ctx context.Context, partitionKey, sortKeyPrefix string, out interface{}, opts ...ports.QueryOption) error {
	options := applyOptions(opts)

	keyCond := expression.Key(t.pkAttr).Equal(expression.Value(partitionKey))
	if sortKeyPrefix != "" {
		keyCond = keyCond.And(expression.Key(sortKeyAttr).BeginsWith(sortKeyPrefix))
	}

	builder := expression.NewBuilder().WithKeyCondition(keyCond)
	if options.ExcludeGuest {
		builder = builder.WithFilter(expression.AttributeNotExists(expression.Name(guestMarkerAttr)))
	}
	if len(options.Projection) > 0 {
		builder = builder.WithProjection(projectionOf(options.Projection))
	}
	expr, err := builder.Build()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	items, err := t.queryAll(ctx, &awsdynamodb.QueryInput{
		TableName:                 aws.String(t.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ProjectionExpression:      expr.Projection(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		t.logger.Error("Query failed",
			zap.String("table", t.tableName),
			zap.String("partitionKey", partitionKey),
			zap.String("sortKeyPrefix", sortKeyPrefix),
			zap.Error(err),
		)
		return fmt.Errorf("query partition: %w", err)
	}

	return attributevalue.UnmarshalListOfMaps(items, out)
}

// QueryIndex loads every item whose indexed attribute equals value.
func (t *Table) QueryIndex(ctx context.Context, indexName, attribute string, value interface{}, out interface{}, opts ...ports.QueryOption) error {
	options := applyOptions(opts)

	builder := expression.NewBuilder().
		WithKeyCondition(expression.Key(attribute).Equal(expression.Value(value)))
	if options.ExcludeGuest {
		builder = builder.WithFilter(expression.AttributeNotExists(expression.Name(guestMarkerAttr)))
	}
	if len(options.Projection) > 0 {
		builder = builder.WithProjection(projectionOf(options.Projection))
	}
	expr, err := builder.Build()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	items, err := t.queryAll(ctx, &awsdynamodb.QueryInput{
		TableName:                 aws.String(t.tableName),
		IndexName:                 aws.String(indexName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ProjectionExpression:      expr.Projection(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		t.logger.Error("Query on index failed",
			zap.String("table", t.tableName),
			zap.String("index", indexName),
			zap.Error(err),
		)
		return fmt.Errorf("query index %s: %w", indexName, err)
	}

	return attributevalue.UnmarshalListOfMaps(items, out)
}

// queryAll follows LastEvaluatedKey until the result set is exhausted.
func (t *Table) queryAll(ctx context.Context, input *awsdynamodb.QueryInput) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	for {
		result, err := t.client.Query(ctx, input)
		if err != nil {
			return nil, err
		}
		items = append(items, result.Items...)
		if len(result.LastEvaluatedKey) == 0 {
			return items, nil
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
}

func applyOptions(opts []ports.QueryOption) ports.QueryOptions {
	var options ports.QueryOptions
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

func projectionOf(attrs []string) expression.ProjectionBuilder {
	names := make([]expression.NameBuilder, 0, len(attrs))
	for _, attr := range attrs {
		names = append(names, expression.Name(attr))
	}
	return expression.NamesList(names[0], names[1:]...)
}
