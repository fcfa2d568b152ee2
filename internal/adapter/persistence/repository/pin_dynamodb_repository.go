package repository

import (
	"context"
	"time"

	"roofing_crm/internal/domain/entities"
	"roofing_crm/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPinsTableName = "pins"
	pinsDealIDIndex      = "deal_id-index"
)

type pinItem struct {
	ID            string  `dynamodbav:"id"`
	DealID        string  `dynamodbav:"deal_id,omitempty"`
	Status        string  `dynamodbav:"status"`
	HomeownerName string  `dynamodbav:"homeowner_name"`
	Address       string  `dynamodbav:"address"`
	Lat           float64 `dynamodbav:"lat"`
	Lng           float64 `dynamodbav:"lng"`
	RepID         string  `dynamodbav:"rep_id"`
	CreatedAt     string  `dynamodbav:"created_at"`
	UpdatedAt     string  `dynamodbav:"updated_at"`
}

// PinDynamoRepository persists map pins in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: deal_id-index (PK: deal_id)
type PinDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IPinRepository = (*PinDynamoRepository)(nil)

func NewPinDynamoRepository(ddb DynamoDBAPI) *PinDynamoRepository {
	return &PinDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PINS_TABLE", defaultPinsTableName),
	}
}

func (r *PinDynamoRepository) GetByID(ctx context.Context, id string) (entities.Pin, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Pin{}, err
	}
	if len(out.Item) == 0 {
		return entities.Pin{}, nil
	}

	var it pinItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Pin{}, err
	}
	return fromPinItem(it), nil
}

func (r *PinDynamoRepository) ListByDealID(ctx context.Context, dealID string) ([]entities.Pin, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(pinsDealIDIndex),
		KeyConditionExpression: aws.String("deal_id = :did"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":did": &types.AttributeValueMemberS{Value: dealID},
		},
	})

	var pins []entities.Pin
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it pinItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			pins = append(pins, fromPinItem(it))
		}
	}
	return pins, nil
}

func (r *PinDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.PinStatus) (entities.Pin, error) {
	return r.update(ctx, id, "attribute_exists(#id)", func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

// LinkDeal sets deal_id once. A pin that is missing or already linked
// yields a zero Pin.
func (r *PinDynamoRepository) LinkDeal(ctx context.Context, id string, dealID string) (entities.Pin, error) {
	return r.update(ctx, id, "attribute_exists(#id) AND attribute_not_exists(#deal_id)", func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #deal_id = :deal_id, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":deal_id":    &types.AttributeValueMemberS{Value: dealID},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#deal_id":    "deal_id",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

func (r *PinDynamoRepository) update(
	ctx context.Context,
	id string,
	condition string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Pin, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	updateExpr, values, names := build(now)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       idKey(id),
		ConditionExpression:       aws.String(condition),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.Pin{}, nil
		}
		return entities.Pin{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Pin{}, nil
	}
	var it pinItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Pin{}, err
	}
	return fromPinItem(it), nil
}

func fromPinItem(it pinItem) entities.Pin {
	return entities.Pin{
		ID:            it.ID,
		DealID:        it.DealID,
		Status:        entities.PinStatus(it.Status),
		HomeownerName: it.HomeownerName,
		Address:       it.Address,
		Lat:           it.Lat,
		Lng:           it.Lng,
		RepID:         it.RepID,
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
	}
}
