// Package memory implements the Table port in process memory. It backs the
// service tests and the local development server; it mirrors DynamoDB
// semantics for composite keys, sort-key ordering, begins_with queries,
// attribute-equality index queries and the byGuest existence filter.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"share-adage-backend/application/ports"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const sortKeyAttr = "key"
const guestMarkerAttr = "byGuest"

// Table is an in-memory ports.Table keyed like its DynamoDB counterpart.
type Table struct {
	mu         sync.RWMutex
	pkAttr     string
	partitions map[string]map[string]map[string]types.AttributeValue
}

// NewTable creates an empty table whose partition key attribute is pkAttr.
func NewTable(pkAttr string) *Table {
	return &Table{
		pkAttr:     pkAttr,
		partitions: make(map[string]map[string]map[string]types.AttributeValue),
	}
}

var _ ports.Table = (*Table)(nil)

func (t *Table) Get(ctx context.Context, partitionKey, sortKey string, out interface{}, opts ...ports.QueryOption) (bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	item, ok := t.partitions[partitionKey][sortKey]
	if !ok {
		return false, nil
	}
	if err := attributevalue.UnmarshalMap(item, out); err != nil {
		return false, err
	}
	return true, nil
}

func (t *Table) Put(ctx context.Context, item interface{}) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	pk := stringAttr(av, t.pkAttr)
	sk := stringAttr(av, sortKeyAttr)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.partitions[pk] == nil {
		t.partitions[pk] = make(map[string]map[string]types.AttributeValue)
	}
	t.partitions[pk][sk] = av
	return nil
}

func (t *Table) Add(ctx context.Context, partitionKey, sortKey, attribute string, delta int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.partitions[partitionKey] == nil {
		t.partitions[partitionKey] = make(map[string]map[string]types.AttributeValue)
	}
	item, ok := t.partitions[partitionKey][sortKey]
	if !ok {
		// DynamoDB ADD creates the item when it is absent.
		item = map[string]types.AttributeValue{
			t.pkAttr:    &types.AttributeValueMemberS{Value: partitionKey},
			sortKeyAttr: &types.AttributeValueMemberS{Value: sortKey},
		}
		t.partitions[partitionKey][sortKey] = item
	}

	current := 0
	if n, ok := item[attribute].(*types.AttributeValueMemberN); ok {
		if err := attributevalue.Unmarshal(n, &current); err != nil {
			return err
		}
	}
	updated, err := attributevalue.Marshal(current + delta)
	if err != nil {
		return err
	}
	item[attribute] = updated
	return nil
}

func (t *Table) SetString(ctx context.Context, partitionKey, sortKey, attribute, value string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.partitions[partitionKey] == nil {
		t.partitions[partitionKey] = make(map[string]map[string]types.AttributeValue)
	}
	item, ok := t.partitions[partitionKey][sortKey]
	if !ok {
		item = map[string]types.AttributeValue{
			t.pkAttr:    &types.AttributeValueMemberS{Value: partitionKey},
			sortKeyAttr: &types.AttributeValueMemberS{Value: sortKey},
		}
		t.partitions[partitionKey][sortKey] = item
	}
	item[attribute] = &types.AttributeValueMemberS{Value: value}
	return nil
}

func (t *Table) Delete(ctx context.Context, partitionKey, sortKey string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.partitions[partitionKey], sortKey)
	return nil
}

func (t *Table) QueryPrefix(ctx context.Context, partitionKey, sortKeyPrefix string, out interface{}, opts ...ports.QueryOption) error {
	options := applyOptions(opts)

	t.mu.RLock()
	var keys []string
	for sk := range t.partitions[partitionKey] {
		if strings.HasPrefix(sk, sortKeyPrefix) {
			keys = append(keys, sk)
		}
	}
	sort.Strings(keys)

	var items []map[string]types.AttributeValue
	for _, sk := range keys {
		item := t.partitions[partitionKey][sk]
		if options.ExcludeGuest && hasAttr(item, guestMarkerAttr) {
			continue
		}
		items = append(items, item)
	}
	t.mu.RUnlock()

	return attributevalue.UnmarshalListOfMaps(items, out)
}

func (t *Table) QueryIndex(ctx context.Context, indexName, attribute string, value interface{}, out interface{}, opts ...ports.QueryOption) error {
	options := applyOptions(opts)

	want, err := attributevalue.Marshal(value)
	if err != nil {
		return err
	}

	t.mu.RLock()
	var items []map[string]types.AttributeValue
	for _, pk := range sortedKeys(t.partitions) {
		partition := t.partitions[pk]
		for _, sk := range sortedKeys(partition) {
			item := partition[sk]
			if !attrEqual(item[attribute], want) {
				continue
			}
			if options.ExcludeGuest && hasAttr(item, guestMarkerAttr) {
				continue
			}
			items = append(items, item)
		}
	}
	t.mu.RUnlock()

	return attributevalue.UnmarshalListOfMaps(items, out)
}

func applyOptions(opts []ports.QueryOption) ports.QueryOptions {
	var options ports.QueryOptions
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

func stringAttr(item map[string]types.AttributeValue, name string) string {
	if s, ok := item[name].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func hasAttr(item map[string]types.AttributeValue, name string) bool {
	_, ok := item[name]
	return ok
}

func attrEqual(a, b types.AttributeValue) bool {
	switch av := a.(type) {
	case *types.AttributeValueMemberS:
		bv, ok := b.(*types.AttributeValueMemberS)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberN:
		bv, ok := b.(*types.AttributeValueMemberN)
		return ok && av.Value == bv.Value
	default:
		return false
	}
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
