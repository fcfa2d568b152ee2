package repository

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"roofing_crm/internal/domain/entities"
	"roofing_crm/internal/domain/workflow"
	"roofing_crm/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultDealsTableName = "deals"

type signatureItem struct {
	SignedAt string `dynamodbav:"signed_at"`
	URL      string `dynamodbav:"url"`
}

type overrideItem struct {
	Amount string `dynamodbav:"amount"`
	Reason string `dynamodbav:"reason"`
	Date   string `dynamodbav:"date"`
}

type commissionItem struct {
	Percent string `dynamodbav:"commission_percent"`
	Amount  string `dynamodbav:"commission_amount,omitempty"`
	Paid    bool   `dynamodbav:"paid"`
}

type auditItem struct {
	At      string `dynamodbav:"at"`
	ActorID string `dynamodbav:"actor_id"`
	Action  string `dynamodbav:"action"`
	Detail  string `dynamodbav:"detail,omitempty"`
}

type dealItem struct {
	ID        string `dynamodbav:"id"`
	PinID     string `dynamodbav:"pin_id,omitempty"`
	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`

	HomeownerName string `dynamodbav:"homeowner_name"`
	Address       string `dynamodbav:"address"`
	Phone         string `dynamodbav:"phone"`
	Email         string `dynamodbav:"email"`
	Notes         string `dynamodbav:"notes"`

	Status       string `dynamodbav:"status"`
	ApprovalType string `dynamodbav:"approval_type,omitempty"`
	ApprovedDate string `dynamodbav:"approved_date,omitempty"`

	ClaimNumber         string `dynamodbav:"claim_number"`
	InsuranceCompany    string `dynamodbav:"insurance_company"`
	InspectionDate      string `dynamodbav:"inspection_date,omitempty"`
	AdjusterMeetingDate string `dynamodbav:"adjuster_meeting_date,omitempty"`
	InstallDate         string `dynamodbav:"install_date,omitempty"`

	RCV          string `dynamodbav:"rcv,omitempty"`
	ACV          string `dynamodbav:"acv,omitempty"`
	Deductible   string `dynamodbav:"deductible,omitempty"`
	Depreciation string `dynamodbav:"depreciation,omitempty"`
	SalesTax     string `dynamodbav:"sales_tax,omitempty"`

	CommissionOverride *overrideItem   `dynamodbav:"commission_override,omitempty"`
	CommissionPaid     bool            `dynamodbav:"commission_paid"`
	CommissionPaidDate string          `dynamodbav:"commission_paid_date,omitempty"`
	Commission         *commissionItem `dynamodbav:"commission,omitempty"`

	Milestones       map[string]string `dynamodbav:"milestones,omitempty"`
	PaymentRequested bool              `dynamodbav:"payment_requested"`
	Signature        *signatureItem    `dynamodbav:"signature,omitempty"`

	RepID   string `dynamodbav:"rep_id"`
	RepName string `dynamodbav:"rep_name"`

	InspectionPhotos []string `dynamodbav:"inspection_photos,stringset,omitempty"`
	InstallPhotos    []string `dynamodbav:"install_photos,stringset,omitempty"`
	CompletionPhotos []string `dynamodbav:"completion_photos,stringset,omitempty"`
	PermitURLs       []string `dynamodbav:"permit_urls,stringset,omitempty"`
	InvoiceURLs      []string `dynamodbav:"invoice_urls,stringset,omitempty"`
	LostStatements   []string `dynamodbav:"lost_statement_urls,stringset,omitempty"`
	AgreementURLs    []string `dynamodbav:"agreement_urls,stringset,omitempty"`

	AuditLog []auditItem `dynamodbav:"audit_log,omitempty"`
}

// dealOptionalAttributes are removed by Save when the deal no longer holds
// a value for them.
var dealOptionalAttributes = []string{
	"pin_id",
	"approval_type",
	"approved_date",
	"inspection_date",
	"adjuster_meeting_date",
	"install_date",
	"rcv",
	"acv",
	"deductible",
	"depreciation",
	"sales_tax",
	"commission_override",
	"commission_paid_date",
	"commission",
	"milestones",
	"signature",
	"audit_log",
}

// DealDynamoRepository persists Deal entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Asset collections are string sets named after their AssetKind and are only
// touched by ADD/DELETE, never by Save.
type DealDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IDealRepository = (*DealDynamoRepository)(nil)

func NewDealDynamoRepository(ddb DynamoDBAPI) *DealDynamoRepository {
	return &DealDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("DEALS_TABLE", defaultDealsTableName),
	}
}

func (r *DealDynamoRepository) Create(ctx context.Context, d entities.Deal) (entities.Deal, error) {
	av, err := attributevalue.MarshalMap(toDealItem(d))
	if err != nil {
		return entities.Deal{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Deal{}, err
	}
	return d, nil
}

func (r *DealDynamoRepository) GetByID(ctx context.Context, id string) (entities.Deal, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Deal{}, err
	}
	if len(out.Item) == 0 {
		return entities.Deal{}, nil
	}
	return decodeDeal(out.Item)
}

// Save overwrites every non-asset attribute of an existing deal. A missing
// record yields a zero Deal.
func (r *DealDynamoRepository) Save(ctx context.Context, d entities.Deal) (entities.Deal, error) {
	it := toDealItem(d)
	it.clearAssets()
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Deal{}, err
	}
	delete(av, "id")
	delete(av, "created_at")

	return r.update(ctx, d.ID, func(string) (string, map[string]types.AttributeValue, map[string]string) {
		return dealSaveExpression(av)
	})
}

func (r *DealDynamoRepository) AddAsset(ctx context.Context, id string, kind entities.AssetKind, refs []string) (entities.Deal, error) {
	return r.mutateAssets(ctx, id, "ADD", kind, refs)
}

func (r *DealDynamoRepository) RemoveAsset(ctx context.Context, id string, kind entities.AssetKind, refs []string) (entities.Deal, error) {
	return r.mutateAssets(ctx, id, "DELETE", kind, refs)
}

func (r *DealDynamoRepository) mutateAssets(ctx context.Context, id, action string, kind entities.AssetKind, refs []string) (entities.Deal, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := action + " #kind :refs SET #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":refs":       &types.AttributeValueMemberSS{Value: refs},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#kind":       string(kind),
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

func (r *DealDynamoRepository) update(
	ctx context.Context,
	id string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Deal, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	updateExpr, values, names := build(now)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       idKey(id),
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.Deal{}, nil
		}
		return entities.Deal{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Deal{}, nil
	}
	return decodeDeal(out.Attributes)
}

// dealSaveExpression builds "SET ... REMOVE ..." over a marshalled item.
// Placeholders are assigned in attribute-name order.
func dealSaveExpression(av map[string]types.AttributeValue) (string, map[string]types.AttributeValue, map[string]string) {
	keys := make([]string, 0, len(av))
	for k := range av {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	names := make(map[string]string, len(keys))
	values := make(map[string]types.AttributeValue, len(keys))
	sets := make([]string, 0, len(keys))
	for i, k := range keys {
		n, v := "#f"+strconv.Itoa(i), ":v"+strconv.Itoa(i)
		names[n] = k
		values[v] = av[k]
		sets = append(sets, n+" = "+v)
	}

	var removes []string
	for i, k := range dealOptionalAttributes {
		if _, ok := av[k]; ok {
			continue
		}
		n := "#r" + strconv.Itoa(i)
		names[n] = k
		removes = append(removes, n)
	}

	expr := "SET " + strings.Join(sets, ", ")
	if len(removes) > 0 {
		expr += " REMOVE " + strings.Join(removes, ", ")
	}
	return expr, values, names
}

func decodeDeal(av map[string]types.AttributeValue) (entities.Deal, error) {
	var it dealItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Deal{}, err
	}
	return fromDealItem(it), nil
}

func (it *dealItem) clearAssets() {
	it.InspectionPhotos = nil
	it.InstallPhotos = nil
	it.CompletionPhotos = nil
	it.PermitURLs = nil
	it.InvoiceURLs = nil
	it.LostStatements = nil
	it.AgreementURLs = nil
}

func (it *dealItem) assetSlot(kind entities.AssetKind) *[]string {
	switch kind {
	case entities.AssetInspectionPhotos:
		return &it.InspectionPhotos
	case entities.AssetInstallPhotos:
		return &it.InstallPhotos
	case entities.AssetCompletionPhotos:
		return &it.CompletionPhotos
	case entities.AssetPermits:
		return &it.PermitURLs
	case entities.AssetInvoices:
		return &it.InvoiceURLs
	case entities.AssetLostStatements:
		return &it.LostStatements
	case entities.AssetAgreements:
		return &it.AgreementURLs
	}
	return nil
}

func toDealItem(d entities.Deal) dealItem {
	it := dealItem{
		ID:                  d.ID,
		PinID:               d.PinID,
		CreatedAt:           formatTime(d.CreatedAt),
		UpdatedAt:           formatTime(d.UpdatedAt),
		HomeownerName:       d.HomeownerName,
		Address:             d.Address,
		Phone:               d.Phone,
		Email:               d.Email,
		Notes:               d.Notes,
		Status:              string(d.Status),
		ApprovedDate:        formatTimePtr(d.ApprovedDate),
		ClaimNumber:         d.ClaimNumber,
		InsuranceCompany:    d.InsuranceCompany,
		InspectionDate:      formatTimePtr(d.InspectionDate),
		AdjusterMeetingDate: formatTimePtr(d.AdjusterMeetingDate),
		InstallDate:         formatTimePtr(d.InstallDate),
		RCV:                 formatDecimalPtr(d.RCV),
		ACV:                 formatDecimalPtr(d.ACV),
		Deductible:          formatDecimalPtr(d.Deductible),
		Depreciation:        formatDecimalPtr(d.Depreciation),
		SalesTax:            formatDecimalPtr(d.SalesTax),
		CommissionPaid:      d.CommissionPaid,
		CommissionPaidDate:  formatTimePtr(d.CommissionPaidDate),
		PaymentRequested:    d.PaymentRequested,
		RepID:               d.RepID,
		RepName:             d.RepName,
	}
	if d.ApprovalType != nil {
		it.ApprovalType = string(*d.ApprovalType)
	}
	if o := d.CommissionOverride; o != nil {
		it.CommissionOverride = &overrideItem{Amount: o.Amount.String(), Reason: o.Reason, Date: formatTime(o.Date)}
	}
	if c := d.Commission; c != nil {
		it.Commission = &commissionItem{Percent: c.Percent.String(), Amount: formatDecimalPtr(c.Amount), Paid: c.Paid}
	}
	if s := d.Signature; s != nil {
		it.Signature = &signatureItem{SignedAt: formatTime(s.SignedAt), URL: s.URL}
	}
	if len(d.Milestones) > 0 {
		it.Milestones = make(map[string]string, len(d.Milestones))
		for status, at := range d.Milestones {
			it.Milestones[string(status)] = formatTime(at)
		}
	}
	for kind, refs := range d.Assets {
		if slot := it.assetSlot(kind); slot != nil && len(refs) > 0 {
			*slot = append([]string(nil), refs...)
		}
	}
	for _, e := range d.AuditLog {
		it.AuditLog = append(it.AuditLog, auditItem{At: formatTime(e.At), ActorID: e.ActorID, Action: e.Action, Detail: e.Detail})
	}
	return it
}

// fromDealItem maps stored records onto the canonical catalog, translating
// statuses written with the older short vocabulary.
func fromDealItem(it dealItem) entities.Deal {
	d := entities.Deal{
		ID:                  it.ID,
		PinID:               it.PinID,
		CreatedAt:           parseTime(it.CreatedAt),
		UpdatedAt:           parseTime(it.UpdatedAt),
		HomeownerName:       it.HomeownerName,
		Address:             it.Address,
		Phone:               it.Phone,
		Email:               it.Email,
		Notes:               it.Notes,
		Status:              canonicalStatus(it.Status),
		ApprovedDate:        parseTimePtr(it.ApprovedDate),
		ClaimNumber:         it.ClaimNumber,
		InsuranceCompany:    it.InsuranceCompany,
		InspectionDate:      parseTimePtr(it.InspectionDate),
		AdjusterMeetingDate: parseTimePtr(it.AdjusterMeetingDate),
		InstallDate:         parseTimePtr(it.InstallDate),
		RCV:                 parseDecimalPtr(it.RCV),
		ACV:                 parseDecimalPtr(it.ACV),
		Deductible:          parseDecimalPtr(it.Deductible),
		Depreciation:        parseDecimalPtr(it.Depreciation),
		SalesTax:            parseDecimalPtr(it.SalesTax),
		CommissionPaid:      it.CommissionPaid,
		CommissionPaidDate:  parseTimePtr(it.CommissionPaidDate),
		PaymentRequested:    it.PaymentRequested,
		RepID:               it.RepID,
		RepName:             it.RepName,
	}
	if it.ApprovalType != "" {
		at := entities.ApprovalType(it.ApprovalType)
		d.ApprovalType = &at
	}
	if o := it.CommissionOverride; o != nil {
		d.CommissionOverride = &entities.CommissionOverride{Amount: parseDecimal(o.Amount), Reason: o.Reason, Date: parseTime(o.Date)}
	}
	if c := it.Commission; c != nil {
		d.Commission = &entities.DealCommission{Percent: parseDecimal(c.Percent), Amount: parseDecimalPtr(c.Amount), Paid: c.Paid}
	}
	if s := it.Signature; s != nil && s.URL != "" {
		d.Signature = &entities.Signature{SignedAt: parseTime(s.SignedAt), URL: s.URL}
	}
	if len(it.Milestones) > 0 {
		d.Milestones = make(map[entities.DealStatus]time.Time, len(it.Milestones))
		for raw, at := range it.Milestones {
			status := canonicalStatus(raw)
			t := parseTime(at)
			// two legacy names can collapse onto one status; keep the earliest
			if prev, ok := d.Milestones[status]; ok && !t.Before(prev) {
				continue
			}
			d.Milestones[status] = t
		}
	}
	for _, kind := range entities.AssetKinds {
		refs := *it.assetSlot(kind)
		if len(refs) == 0 {
			continue
		}
		if d.Assets == nil {
			d.Assets = make(map[entities.AssetKind][]string, len(entities.AssetKinds))
		}
		sorted := append([]string(nil), refs...)
		sort.Strings(sorted)
		d.Assets[kind] = sorted
	}
	for _, e := range it.AuditLog {
		d.AuditLog = append(d.AuditLog, entities.AuditEntry{At: parseTime(e.At), ActorID: e.ActorID, Action: e.Action, Detail: e.Detail})
	}
	return d
}

func canonicalStatus(raw string) entities.DealStatus {
	if s, ok := workflow.TranslateLegacyStatus(raw); ok {
		return s
	}
	return entities.DealStatus(raw)
}
