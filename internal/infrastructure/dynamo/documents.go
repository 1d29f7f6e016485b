package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/docnotify-api/internal/domain"
)

// DocumentRepo provides typed DynamoDB operations for the documents table.
type DocumentRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewDocumentRepo(client *dynamodb.Client, tableName string) *DocumentRepo {
	return &DocumentRepo{client: client, tableName: tableName}
}

func (r *DocumentRepo) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("document_id", documentID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
	}
	var d domain.Document
	if err := attributevalue.UnmarshalMap(out.Item, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentRepo) Put(ctx context.Context, d *domain.Document) error {
	item, err := attributevalue.MarshalMap(d)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// UpdateTx stages a partial document update in the caller's transaction so
// it commits or rolls back together with its audit event.
func (r *DocumentRepo) UpdateTx(tx *Tx, documentID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	tx.Update(r.tableName, strKey("document_id", documentID), ue)
	return nil
}
