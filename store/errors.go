package store

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/songbook/songs"
)

// mapError classifies a DynamoDB SDK error into the service taxonomy.
// Connectivity and environment failures wrap songs.ErrUnavailable so
// callers can detect them without depending on SDK types; anything else
// propagates with the operation name attached.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if isUnavailable(err) {
		return fmt.Errorf("%w: %s: %v", songs.ErrUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isUnavailable reports whether err means the store cannot currently
// serve requests: the table is missing, the network call never
// completed, or the request ran out of time.
func isUnavailable(err error) bool {
	var rnf *types.ResourceNotFoundException
	if errors.As(err, &rnf) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
