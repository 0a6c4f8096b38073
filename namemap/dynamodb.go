package namemap

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"golang.org/x/sync/semaphore"
)

// handleAttr is the DynamoDB partition key column name.
const handleAttr = "handle"

// DDBClient is the subset of the DynamoDB API DynamoDBStore needs,
// narrowed so tests can supply a fake without pulling in the real SDK
// client.
type DDBClient interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	DeleteTable(ctx context.Context, in *dynamodb.DeleteTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteTableOutput, error)
}

// DynamoDBStore backs the name map's SpaceName/AttrName contract with a
// single DynamoDB table (partition key: an 8-byte handle encoded as a
// decimal-string number attribute; value attribute: AttrName, also a
// number). Table schema:
//
//	aws dynamodb create-table \
//	  --table-name <tableName> \
//	  --attribute-definitions AttributeName=handle,AttributeType=N \
//	  --key-schema AttributeName=handle,KeyType=HASH \
//	  --billing-mode PAY_PER_REQUEST
//
// Put/Get/Del each dispatch their network call on a goroutine bounded
// by a semaphore.Weighted, returning an op id immediately; the actual
// result is pushed onto an internal completions channel once the call
// returns. This preserves the "submit all, then drain one completion
// per submission" contract while letting real requests run
// concurrently against DynamoDB.
type DynamoDBStore struct {
	client    DDBClient
	tableName string
	sem       *semaphore.Weighted

	nextOp      int64
	completions chan Completion
}

// NewDynamoDBStore wraps client, issuing requests against tableName.
// maxInFlight bounds the number of concurrent PutItem/GetItem/
// DeleteItem calls; if <= 0 it defaults to 16.
func NewDynamoDBStore(client DDBClient, tableName string, maxInFlight int64) *DynamoDBStore {
	if maxInFlight <= 0 {
		maxInFlight = 16
	}
	return &DynamoDBStore{
		client:      client,
		tableName:   tableName,
		sem:         semaphore.NewWeighted(maxInFlight),
		completions: make(chan Completion, maxInFlight),
	}
}

func (s *DynamoDBStore) allocOp() int64 {
	s.nextOp++
	return s.nextOp
}

func handleToNumber(key [8]byte) string {
	return fmt.Sprintf("%d", binary.LittleEndian.Uint64(key[:]))
}

func (s *DynamoDBStore) Put(ctx context.Context, key, attr [8]byte) (int64, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return 0, err
	}
	op := s.allocOp()

	go func() {
		defer s.sem.Release(1)

		_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(s.tableName),
			Item: map[string]types.AttributeValue{
				handleAttr: &types.AttributeValueMemberN{Value: handleToNumber(key)},
				AttrName:   &types.AttributeValueMemberN{Value: handleToNumber(attr)},
			},
		})
		s.completions <- Completion{OpID: op, Key: key, Attr: attr, Found: err == nil, Err: err}
	}()

	return op, nil
}

func (s *DynamoDBStore) Get(ctx context.Context, key [8]byte) (int64, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return 0, err
	}
	op := s.allocOp()

	go func() {
		defer s.sem.Release(1)

		out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
			TableName: aws.String(s.tableName),
			Key: map[string]types.AttributeValue{
				handleAttr: &types.AttributeValueMemberN{Value: handleToNumber(key)},
			},
		})
		if err != nil {
			s.completions <- Completion{OpID: op, Key: key, Err: err}
			return
		}
		attrVal, ok := out.Item[AttrName]
		if !ok {
			s.completions <- Completion{OpID: op, Key: key, Found: false}
			return
		}
		n, ok := attrVal.(*types.AttributeValueMemberN)
		if !ok {
			s.completions <- Completion{OpID: op, Key: key, Err: fmt.Errorf("namemap: attribute %q has unexpected type", AttrName)}
			return
		}
		var shardID uint64
		if _, err := fmt.Sscanf(n.Value, "%d", &shardID); err != nil {
			s.completions <- Completion{OpID: op, Key: key, Err: fmt.Errorf("namemap: parsing attribute %q: %w", AttrName, err)}
			return
		}
		s.completions <- Completion{OpID: op, Key: key, Attr: EncodeShard(shardID), Found: true}
	}()

	return op, nil
}

func (s *DynamoDBStore) Del(ctx context.Context, key [8]byte) (int64, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return 0, err
	}
	op := s.allocOp()

	go func() {
		defer s.sem.Release(1)

		_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(s.tableName),
			Key: map[string]types.AttributeValue{
				handleAttr: &types.AttributeValueMemberN{Value: handleToNumber(key)},
			},
		})
		s.completions <- Completion{OpID: op, Key: key, Found: err == nil, Err: err}
	}()

	return op, nil
}

func (s *DynamoDBStore) Drain(ctx context.Context) (Completion, error) {
	select {
	case c := <-s.completions:
		return c, nil
	case <-ctx.Done():
		return Completion{}, ctx.Err()
	}
}

func (s *DynamoDBStore) CleanUpSpace(ctx context.Context) error {
	_, err := s.client.DeleteTable(ctx, &dynamodb.DeleteTableInput{TableName: aws.String(s.tableName)})
	return err
}
