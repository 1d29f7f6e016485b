package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/docnotify-api/internal/domain"
)

// SubscriptionRepo provides typed DynamoDB operations for the subscriptions
// table and its uniqueness-marker table.
//
// Uniqueness of the (user, document, event) triple is enforced by the
// storage layer: every subscription row is written together with a marker
// item keyed by the triple, guarded by attribute_not_exists, inside the
// caller's transaction. A racing second insert loses the conditional write
// and the whole transaction cancels.
type SubscriptionRepo struct {
	client    *dynamodb.Client
	tableName string
	keysTable string
}

func NewSubscriptionRepo(client *dynamodb.Client, tableName, keysTable string) *SubscriptionRepo {
	return &SubscriptionRepo{client: client, tableName: tableName, keysTable: keysTable}
}

// tripleKey is the marker-table primary key for one (user, document, event).
func tripleKey(userID, documentID, event string) string {
	return userID + "/" + documentID + "/" + event
}

func (r *SubscriptionRepo) Get(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("subscription_id", subscriptionID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("subscription %s: %w", subscriptionID, domain.ErrNotFound)
	}
	var s domain.Subscription
	if err := attributevalue.UnmarshalMap(out.Item, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByTriple resolves the single subscription for (user, document, event)
// via the marker table. The uniqueness invariant guarantees at most one.
func (r *SubscriptionRepo) GetByTriple(ctx context.Context, userID, documentID, event string) (*domain.Subscription, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.keysTable),
		Key:       strKey("lookup_key", tripleKey(userID, documentID, event)),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("subscription for %s on %s: %w", event, documentID, domain.ErrNotFound)
	}
	idAttr, ok := out.Item["subscription_id"].(*types.AttributeValueMemberS)
	if !ok {
		return nil, fmt.Errorf("marker item for %s missing subscription_id", documentID)
	}
	return r.Get(ctx, idAttr.Value)
}

// ListByUser returns the actor's subscriptions on one document and event,
// newest first, sliced by offset/limit. Other users' rows never appear: the
// query is keyed on user_id.
func (r *SubscriptionRepo) ListByUser(ctx context.Context, userID, documentID, event string, offset, limit int) ([]domain.Subscription, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("user_id-created_at-index"),
		KeyConditionExpression: aws.String("user_id = :uid"),
		FilterExpression:       aws.String("document_id = :doc AND #e = :evt"),
		ExpressionAttributeNames: map[string]string{
			"#e": "event",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
			":doc": &types.AttributeValueMemberS{Value: documentID},
			":evt": &types.AttributeValueMemberS{Value: event},
		},
		ScanIndexForward: aws.Bool(false), // created_at descending
	}
	subs, err := r.queryAll(ctx, input, offset+limit)
	if err != nil {
		return nil, err
	}
	return slicePage(subs, offset, limit), nil
}

// ListByDocumentEvent returns every user's subscription on (document, event).
// This is the fan-out input when a matching event fires.
func (r *SubscriptionRepo) ListByDocumentEvent(ctx context.Context, documentID, event string) ([]domain.Subscription, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("document_id-created_at-index"),
		KeyConditionExpression: aws.String("document_id = :doc"),
		FilterExpression:       aws.String("#e = :evt"),
		ExpressionAttributeNames: map[string]string{
			"#e": "event",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":doc": &types.AttributeValueMemberS{Value: documentID},
			":evt": &types.AttributeValueMemberS{Value: event},
		},
	}
	return r.queryAll(ctx, input, 0)
}

// PutTx stages the subscription row plus its uniqueness marker in the
// caller's transaction. Marker insertion is conditional, so a concurrent
// create of the same triple cancels the whole transaction with a conflict.
func (r *SubscriptionRepo) PutTx(tx *Tx, s *domain.Subscription) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("marshal subscription: %w", err)
	}
	tx.Put(r.tableName, item)

	marker := strKey("lookup_key", tripleKey(s.UserID, s.DocumentID, s.Event))
	marker["subscription_id"] = &types.AttributeValueMemberS{Value: s.SubscriptionID}
	tx.PutIfAbsent(r.keysTable, marker, "lookup_key")
	return nil
}

// DeleteTx stages removal of the subscription row and its marker, freeing
// the triple for a later re-subscribe.
func (r *SubscriptionRepo) DeleteTx(tx *Tx, s *domain.Subscription) error {
	tx.Delete(r.tableName, strKey("subscription_id", s.SubscriptionID))
	tx.Delete(r.keysTable, strKey("lookup_key", tripleKey(s.UserID, s.DocumentID, s.Event)))
	return nil
}

// queryAll drains query pages until want items are collected or the index is
// exhausted. want <= 0 means no bound.
func (r *SubscriptionRepo) queryAll(ctx context.Context, input *dynamodb.QueryInput, want int) ([]domain.Subscription, error) {
	var all []domain.Subscription
	for {
		out, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, err
		}
		var page []domain.Subscription
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		all = append(all, page...)
		if out.LastEvaluatedKey == nil || (want > 0 && len(all) >= want) {
			return all, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func slicePage(subs []domain.Subscription, offset, limit int) []domain.Subscription {
	if offset >= len(subs) {
		return []domain.Subscription{}
	}
	end := offset + limit
	if limit <= 0 || end > len(subs) {
		end = len(subs)
	}
	return subs[offset:end]
}
