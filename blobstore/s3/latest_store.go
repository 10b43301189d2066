package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// ErrConcurrentPublish is returned when two publishers race for the same
// version slot. The caller should re-read and retry.
var ErrConcurrentPublish = errors.New("concurrent publish detected")

// ErrNoPublished is returned by Latest when a channel has no published
// archive yet.
var ErrNoPublished = errors.New("no published archive")

// LatestStore tracks the latest published archive per channel in DynamoDB.
// Archive content lives in any blobstore.Store; DynamoDB supplies the
// conditional writes needed for multiple publishers to advance the pointer
// without losing updates.
//
// Table schema:
//   - Partition key: channel (string)
//   - Sort key: version (number), monotonically increasing
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name pcst-archives \
//	  --attribute-definitions AttributeName=channel,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=channel,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type LatestStore struct {
	client    DDBClient
	tableName string
}

// NewLatestStore creates a latest-pointer store over the given table.
func NewLatestStore(client DDBClient, tableName string) *LatestStore {
	return &LatestStore{
		client:    client,
		tableName: tableName,
	}
}

// Publish records name as the next version of the channel. The write is
// conditional on the version slot being free, so two racing publishers
// cannot both claim it.
func (s *LatestStore) Publish(ctx context.Context, channel, name string) (uint64, error) {
	current, _, err := s.latest(ctx, channel)
	if err != nil && !errors.Is(err, ErrNoPublished) {
		return 0, err
	}
	next := current + 1

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"channel":      &types.AttributeValueMemberS{Value: channel},
			"version":      &types.AttributeValueMemberN{Value: strconv.FormatUint(next, 10)},
			"archive_name": &types.AttributeValueMemberS{Value: name},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return 0, ErrConcurrentPublish
		}
		return 0, fmt.Errorf("failed to publish version: %w", err)
	}
	return next, nil
}

// Latest returns the name of the channel's most recently published archive.
func (s *LatestStore) Latest(ctx context.Context, channel string) (string, error) {
	_, name, err := s.latest(ctx, channel)
	return name, err
}

func (s *LatestStore) latest(ctx context.Context, channel string) (uint64, string, error) {
	resp, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("channel = :ch"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ch": &types.AttributeValueMemberS{Value: channel},
		},
		ScanIndexForward: aws.Bool(false), // Descending order
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", fmt.Errorf("failed to query latest version: %w", err)
	}
	if len(resp.Items) == 0 {
		return 0, "", ErrNoPublished
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, "", errors.New("invalid version attribute")
	}
	nameAttr, ok := item["archive_name"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("invalid archive_name attribute")
	}

	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("failed to parse version: %w", err)
	}
	return version, nameAttr.Value, nil
}
