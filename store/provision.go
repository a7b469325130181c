package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// tableWaitTimeout bounds how long EnsureTable waits for a newly created
// table to become ACTIVE.
const tableWaitTimeout = 2 * time.Minute

// EnsureTable creates the songs table if it does not exist and waits
// until it is ACTIVE. The table uses id as its partition key and
// on-demand billing. Returns true when this call created the table.
func (s *Store) EnsureTable(ctx context.Context) (bool, error) {
	exists, err := s.tableExists(ctx)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	_, err = s.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(s.table),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		return false, fmt.Errorf("create table %s: %w", s.table, err)
	}

	waiter := dynamodb.NewTableExistsWaiter(s.client)
	err = waiter.Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.table),
	}, tableWaitTimeout)
	if err != nil {
		return false, fmt.Errorf("wait for table %s: %w", s.table, err)
	}

	return true, nil
}

func (s *Store) tableExists(ctx context.Context) (bool, error) {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.table),
	})
	if err != nil {
		var rnf *types.ResourceNotFoundException
		if errors.As(err, &rnf) {
			return false, nil
		}
		return false, fmt.Errorf("describe table %s: %w", s.table, err)
	}
	return true, nil
}

// EnablePointInTimeRecovery turns on continuous backups for the table.
// Callers may treat a failure as a warning; the table works without it.
func (s *Store) EnablePointInTimeRecovery(ctx context.Context) error {
	_, err := s.client.UpdateContinuousBackups(ctx, &dynamodb.UpdateContinuousBackupsInput{
		TableName: aws.String(s.table),
		PointInTimeRecoverySpecification: &types.PointInTimeRecoverySpecification{
			PointInTimeRecoveryEnabled: aws.Bool(true),
		},
	})
	if err != nil {
		return fmt.Errorf("enable point-in-time recovery on %s: %w", s.table, err)
	}
	return nil
}

// TableStatus summarizes the table for operator tooling. ItemCount is
// the value DynamoDB reports, which it refreshes roughly every six
// hours.
type TableStatus struct {
	Name      string
	Status    string
	ItemCount int64
}

// DescribeStatus returns the current table summary.
func (s *Store) DescribeStatus(ctx context.Context) (*TableStatus, error) {
	out, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.table),
	})
	if err != nil {
		return nil, mapError("describe table", err)
	}

	status := &TableStatus{
		Name:   aws.ToString(out.Table.TableName),
		Status: string(out.Table.TableStatus),
	}
	if out.Table.ItemCount != nil {
		status.ItemCount = *out.Table.ItemCount
	}
	return status, nil
}
