package s3

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDDB implements the conditional-put and descending-query semantics the
// latest store relies on.
type fakeDDB struct {
	mu    sync.Mutex
	items map[string]map[string]map[string]types.AttributeValue // channel -> version -> item

	// prePut, if set, runs before each PutItem takes effect. Tests use it
	// to slip a competing write between a publisher's read and write.
	prePut func()
}

func newFakeDDB() *fakeDDB {
	return &fakeDDB{items: make(map[string]map[string]map[string]types.AttributeValue)}
}

func (f *fakeDDB) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.prePut != nil {
		f.prePut()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	channel := params.Item["channel"].(*types.AttributeValueMemberS).Value
	version := params.Item["version"].(*types.AttributeValueMemberN).Value

	if f.items[channel] == nil {
		f.items[channel] = make(map[string]map[string]types.AttributeValue)
	}
	if _, exists := f.items[channel][version]; exists {
		return nil, &types.ConditionalCheckFailedException{}
	}
	f.items[channel][version] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDDB) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	channel := params.ExpressionAttributeValues[":ch"].(*types.AttributeValueMemberS).Value

	versions := make([]string, 0, len(f.items[channel]))
	for v := range f.items[channel] {
		versions = append(versions, v)
	}
	// Numeric sort key, descending like ScanIndexForward=false.
	sort.Slice(versions, func(i, j int) bool {
		return len(versions[i]) > len(versions[j]) ||
			(len(versions[i]) == len(versions[j]) && versions[i] > versions[j])
	})

	var items []map[string]types.AttributeValue
	for _, v := range versions {
		items = append(items, f.items[channel][v])
		if params.Limit != nil && len(items) == int(aws.ToInt32(params.Limit)) {
			break
		}
	}
	return &dynamodb.QueryOutput{Items: items}, nil
}

func TestLatestStore(t *testing.T) {
	ctx := context.Background()

	ddb := newFakeDDB()
	ls := NewLatestStore(ddb, "pcst-archives")

	t.Run("empty channel", func(t *testing.T) {
		_, err := ls.Latest(ctx, "prod")
		require.ErrorIs(t, err, ErrNoPublished)
	})

	t.Run("publish advances the pointer", func(t *testing.T) {
		v, err := ls.Publish(ctx, "prod", "runs/a.pcsa")
		require.NoError(t, err)
		assert.EqualValues(t, 1, v)

		v, err = ls.Publish(ctx, "prod", "runs/b.pcsa")
		require.NoError(t, err)
		assert.EqualValues(t, 2, v)

		name, err := ls.Latest(ctx, "prod")
		require.NoError(t, err)
		assert.Equal(t, "runs/b.pcsa", name)
	})

	t.Run("channels are independent", func(t *testing.T) {
		v, err := ls.Publish(ctx, "staging", "runs/c.pcsa")
		require.NoError(t, err)
		assert.EqualValues(t, 1, v)

		name, err := ls.Latest(ctx, "prod")
		require.NoError(t, err)
		assert.Equal(t, "runs/b.pcsa", name)
	})

	t.Run("racing publisher loses cleanly", func(t *testing.T) {
		_, err := ls.Publish(ctx, "race", "runs/x.pcsa")
		require.NoError(t, err)

		// A competitor claims version 2 between our read and write.
		ddb.prePut = func() {
			ddb.prePut = nil
			ddb.mu.Lock()
			ddb.items["race"]["2"] = map[string]types.AttributeValue{
				"channel":      &types.AttributeValueMemberS{Value: "race"},
				"version":      &types.AttributeValueMemberN{Value: "2"},
				"archive_name": &types.AttributeValueMemberS{Value: "runs/raced.pcsa"},
			}
			ddb.mu.Unlock()
		}

		_, err = ls.Publish(ctx, "race", "runs/y.pcsa")
		require.ErrorIs(t, err, ErrConcurrentPublish)

		// The competitor's archive stays latest; retry succeeds at 3.
		name, err := ls.Latest(ctx, "race")
		require.NoError(t, err)
		assert.Equal(t, "runs/raced.pcsa", name)

		v, err := ls.Publish(ctx, "race", "runs/y.pcsa")
		require.NoError(t, err)
		assert.EqualValues(t, 3, v)
	})
}
