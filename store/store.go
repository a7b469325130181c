package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/songbook/songs"
)

// Store persists songs in a single DynamoDB table keyed by id.
type Store struct {
	client *dynamodb.Client
	table  string
}

var _ songs.Store = (*Store)(nil)

// New creates a new Store backed by the given table.
func New(client *dynamodb.Client, table string) *Store {
	return &Store{client: client, table: table}
}

// Get retrieves a song by id, returning songs.ErrNotFound if missing.
func (s *Store) Get(ctx context.Context, id string) (*songs.Song, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       songKey(id),
	})
	if err != nil {
		return nil, mapError("get item", err)
	}
	if result.Item == nil {
		return nil, songs.ErrNotFound
	}

	return unmarshalSong(result.Item)
}

// Put stores the full record, overwriting any record with the same id.
func (s *Store) Put(ctx context.Context, song songs.Song) error {
	item, err := marshalSong(song)
	if err != nil {
		return err
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	return mapError("put item", err)
}

// Update merges the supplied fields into the stored record in a single
// conditional write and returns the merged result. Returns
// songs.ErrNotFound if no record with that id exists. An empty patch
// performs no write and returns the current record.
func (s *Store) Update(ctx context.Context, id string, patch songs.UpdateParams) (*songs.Song, error) {
	if patch.IsEmpty() {
		return s.Get(ctx, id)
	}
	expr := buildUpdateExpression(patch)

	result, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.table),
		Key:                       songKey(id),
		UpdateExpression:          aws.String(expr.update),
		ConditionExpression:       aws.String("attribute_exists(id)"),
		ExpressionAttributeNames:  expr.names,
		ExpressionAttributeValues: expr.values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return nil, songs.ErrNotFound
		}
		return nil, mapError("update item", err)
	}

	return unmarshalSong(result.Attributes)
}

// Delete removes the record in a single conditional write and returns
// its last state. Returns songs.ErrNotFound if no record with that id
// exists.
func (s *Store) Delete(ctx context.Context, id string) (*songs.Song, error) {
	result, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.table),
		Key:                 songKey(id),
		ConditionExpression: aws.String("attribute_exists(id)"),
		ReturnValues:        types.ReturnValueAllOld,
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return nil, songs.ErrNotFound
		}
		return nil, mapError("delete item", err)
	}

	return unmarshalSong(result.Attributes)
}

// ListAll returns every record in the table, following scan pagination
// until the table is exhausted. Never returns a nil slice.
func (s *Store) ListAll(ctx context.Context) ([]songs.Song, error) {
	all := []songs.Song{}

	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, mapError("scan", err)
		}
		var batch []songs.Song
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("unmarshal scan page: %w", err)
		}
		all = append(all, batch...)
	}

	return all, nil
}

// Ping verifies the table is reachable without touching any records.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.table),
	})
	return mapError("describe table", err)
}

// songKey builds the primary key for a song id.
func songKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func marshalSong(song songs.Song) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(song)
	if err != nil {
		return nil, fmt.Errorf("marshal song: %w", err)
	}
	return item, nil
}

func unmarshalSong(item map[string]types.AttributeValue) (*songs.Song, error) {
	var song songs.Song
	if err := attributevalue.UnmarshalMap(item, &song); err != nil {
		return nil, fmt.Errorf("unmarshal song: %w", err)
	}
	return &song, nil
}

// updateExpression holds the pieces of a DynamoDB SET expression.
type updateExpression struct {
	update string
	names  map[string]string
	values map[string]types.AttributeValue
}

// buildUpdateExpression translates a patch into a SET expression. Every
// attribute goes through an expression attribute name placeholder
// because name and path are reserved words in update expressions.
// Returns nil when the patch carries no fields.
func buildUpdateExpression(patch songs.UpdateParams) *updateExpression {
	var clauses []string
	names := map[string]string{}
	values := map[string]types.AttributeValue{}

	if patch.Name != nil {
		clauses = append(clauses, "#name = :name")
		names["#name"] = "name"
		values[":name"] = &types.AttributeValueMemberS{Value: *patch.Name}
	}
	if patch.Path != nil {
		clauses = append(clauses, "#path = :path")
		names["#path"] = "path"
		values[":path"] = &types.AttributeValueMemberS{Value: *patch.Path}
	}
	if patch.Plays != nil {
		clauses = append(clauses, "#plays = :plays")
		names["#plays"] = "plays"
		values[":plays"] = &types.AttributeValueMemberN{Value: strconv.Itoa(*patch.Plays)}
	}

	if len(clauses) == 0 {
		return nil
	}
	return &updateExpression{
		update: "SET " + strings.Join(clauses, ", "),
		names:  names,
		values: values,
	}
}
