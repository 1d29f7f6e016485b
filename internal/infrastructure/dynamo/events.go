package dynamo

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/docnotify-api/internal/domain"
)

// EventRepo appends audit records to the events table. Events are only ever
// written inside a command transaction, so the repo needs no client of its
// own; there is no update or delete path.
type EventRepo struct {
	tableName string
}

func NewEventRepo(tableName string) *EventRepo {
	return &EventRepo{tableName: tableName}
}

// PutTx stages the audit record in the caller's transaction so it cannot
// outlive a rolled-back mutation.
func (r *EventRepo) PutTx(tx *Tx, e *domain.Event) error {
	item, err := attributevalue.MarshalMap(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	tx.Put(r.tableName, item)
	return nil
}
