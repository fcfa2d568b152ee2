package repository

import (
	"context"
	"strings"

	"roofing_crm/internal/domain/entities"
	"roofing_crm/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const defaultRepsTableName = "reps"

type repItem struct {
	ID                       string `dynamodbav:"id"`
	FullName                 string `dynamodbav:"full_name"`
	CommissionLevel          string `dynamodbav:"commission_level"`
	DefaultCommissionPercent string `dynamodbav:"default_commission_percent,omitempty"`
}

// RepDynamoRepository reads sales reps from DynamoDB. Reps are managed
// elsewhere; this service only needs their commission tier.
type RepDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IRepRepository = (*RepDynamoRepository)(nil)

func NewRepDynamoRepository(ddb DynamoDBAPI) *RepDynamoRepository {
	return &RepDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("REPS_TABLE", defaultRepsTableName),
	}
}

func (r *RepDynamoRepository) GetByID(ctx context.Context, id string) (entities.Rep, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       idKey(id),
	})
	if err != nil {
		return entities.Rep{}, err
	}
	if len(out.Item) == 0 {
		return entities.Rep{}, nil
	}

	var it repItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Rep{}, err
	}
	return entities.Rep{
		ID:                       it.ID,
		FullName:                 it.FullName,
		CommissionLevel:          entities.CommissionLevel(strings.ToLower(strings.TrimSpace(it.CommissionLevel))),
		DefaultCommissionPercent: parseDecimalPtr(it.DefaultCommissionPercent),
	}, nil
}
