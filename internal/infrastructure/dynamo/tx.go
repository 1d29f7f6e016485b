package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/docnotify-api/internal/domain"
)

// Tx accumulates writes that commit atomically through a single
// TransactWriteItems call. Nothing reaches DynamoDB before Commit, so an
// aborted request leaves no partial state behind. A Tx belongs to one
// request goroutine and is not safe for concurrent use.
type Tx struct {
	items []types.TransactWriteItem
}

// NewTx returns an empty write-set.
func NewTx() *Tx {
	return &Tx{}
}

// Len reports the number of pending writes.
func (t *Tx) Len() int {
	return len(t.items)
}

// Put stages an unconditional item write.
func (t *Tx) Put(table string, item map[string]types.AttributeValue) {
	t.items = append(t.items, types.TransactWriteItem{
		Put: &types.Put{
			TableName: aws.String(table),
			Item:      item,
		},
	})
}

// PutIfAbsent stages an item write that fails the whole transaction when an
// item with the same key already exists. This is how storage-level
// uniqueness constraints are expressed.
func (t *Tx) PutIfAbsent(table string, item map[string]types.AttributeValue, keyAttr string) {
	t.items = append(t.items, types.TransactWriteItem{
		Put: &types.Put{
			TableName:                aws.String(table),
			Item:                     item,
			ConditionExpression:      aws.String("attribute_not_exists(#pk)"),
			ExpressionAttributeNames: map[string]string{"#pk": keyAttr},
		},
	})
}

// Update stages a SET-expression update of one item.
func (t *Tx) Update(table string, key map[string]types.AttributeValue, ue updateExpr) {
	t.items = append(t.items, types.TransactWriteItem{
		Update: &types.Update{
			TableName:                 aws.String(table),
			Key:                       key,
			UpdateExpression:          aws.String(ue.Expr),
			ExpressionAttributeNames:  ue.Names,
			ExpressionAttributeValues: ue.Values,
		},
	})
}

// Delete stages an item deletion.
func (t *Tx) Delete(table string, key map[string]types.AttributeValue) {
	t.items = append(t.items, types.TransactWriteItem{
		Delete: &types.Delete{
			TableName: aws.String(table),
			Key:       key,
		},
	})
}

// Runner commits write-sets against a DynamoDB client. The API surface owns
// the transaction boundary; services only append to the Tx they are handed.
type Runner struct {
	client *dynamodb.Client
}

func NewRunner(client *dynamodb.Client) *Runner {
	return &Runner{client: client}
}

// WithTransaction runs fn with a fresh write-set and commits it when fn
// succeeds. An error from fn discards the write-set untouched. A commit that
// loses a conditional write surfaces as domain.ErrConflict so the caller can
// recover (e.g. by re-reading the row that won).
func (r *Runner) WithTransaction(ctx context.Context, fn func(tx *Tx) error) error {
	tx := NewTx()
	if err := fn(tx); err != nil {
		return err
	}
	return r.commit(ctx, tx)
}

func (r *Runner) commit(ctx context.Context, tx *Tx) error {
	if tx.Len() == 0 {
		return nil
	}
	_, err := r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: tx.items,
	})
	if err != nil {
		if isConditionalCancellation(err) {
			return fmt.Errorf("conditional write lost: %w", domain.ErrConflict)
		}
		return err
	}
	return nil
}

// isConditionalCancellation reports whether the transaction was cancelled
// because a ConditionExpression failed, as opposed to a throttling or
// validation fault.
func isConditionalCancellation(err error) bool {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return false
	}
	for _, reason := range tce.CancellationReasons {
		if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
			return true
		}
	}
	return false
}
