// Package dynamodb provides a catalog.Catalog backed by an Amazon DynamoDB
// table.
//
// Table schema:
//   - Partition key: digest (string) - the archive digest
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name sparsepack-catalog \
//	  --attribute-definitions AttributeName=digest,AttributeType=S \
//	  --key-schema AttributeName=digest,KeyType=HASH \
//	  --billing-mode PAY_PER_REQUEST
package dynamodb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/sparsepack/catalog"
	"github.com/opencontainers/go-digest"
)

// Client is the interface for DynamoDB operations.
type Client interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Attribute names.
const (
	attrDigest       = "digest"
	attrKind         = "kind"
	attrName         = "name"
	attrSize         = "size"
	attrValid        = "is_valid"
	attrNonzeroCount = "nonzero_count"
	attrShape        = "shape"
	attrEncoding     = "encoding"
	attrCreatedAt    = "created_at"
)

// Catalog implements catalog.Catalog on a DynamoDB table.
type Catalog struct {
	client    Client
	tableName string
}

var _ catalog.Catalog = (*Catalog)(nil)

// New creates a Catalog using the default AWS credential chain.
func New(ctx context.Context, tableName string, optFns ...func(*config.LoadOptions) error) (*Catalog, error) {
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, err
	}
	return NewCatalog(dynamodb.NewFromConfig(cfg), tableName), nil
}

// NewCatalog creates a Catalog with an existing client.
func NewCatalog(client Client, tableName string) *Catalog {
	return &Catalog{client: client, tableName: tableName}
}

// Record implements catalog.Catalog.
func (c *Catalog) Record(ctx context.Context, e catalog.Entry) error {
	if err := e.Digest.Validate(); err != nil {
		return err
	}

	item := map[string]types.AttributeValue{
		attrDigest:       &types.AttributeValueMemberS{Value: e.Digest.String()},
		attrKind:         &types.AttributeValueMemberS{Value: string(e.Kind)},
		attrName:         &types.AttributeValueMemberS{Value: e.Name},
		attrSize:         &types.AttributeValueMemberN{Value: strconv.FormatInt(e.Size, 10)},
		attrValid:        &types.AttributeValueMemberBOOL{Value: e.Valid},
		attrNonzeroCount: &types.AttributeValueMemberN{Value: strconv.FormatUint(e.NonzeroCount, 10)},
		attrEncoding:     &types.AttributeValueMemberS{Value: e.Encoding},
		attrCreatedAt:    &types.AttributeValueMemberS{Value: e.CreatedAt.UTC().Format(time.RFC3339Nano)},
	}
	// Lists keep the order; number sets would not.
	list := make([]types.AttributeValue, len(e.Shape))
	for i, dim := range e.Shape {
		list[i] = &types.AttributeValueMemberN{Value: strconv.FormatUint(dim, 10)}
	}
	item[attrShape] = &types.AttributeValueMemberL{Value: list}

	_, err := c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put catalog entry: %w", err)
	}
	return nil
}

// Lookup implements catalog.Catalog.
func (c *Catalog) Lookup(ctx context.Context, d digest.Digest) (catalog.Entry, error) {
	resp, err := c.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.tableName),
		Key: map[string]types.AttributeValue{
			attrDigest: &types.AttributeValueMemberS{Value: d.String()},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return catalog.Entry{}, fmt.Errorf("failed to get catalog entry: %w", err)
	}
	if len(resp.Item) == 0 {
		return catalog.Entry{}, catalog.ErrNotFound
	}
	return decodeEntry(resp.Item)
}

// Remove implements catalog.Catalog.
func (c *Catalog) Remove(ctx context.Context, d digest.Digest) error {
	_, err := c.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(c.tableName),
		Key: map[string]types.AttributeValue{
			attrDigest: &types.AttributeValueMemberS{Value: d.String()},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete catalog entry: %w", err)
	}
	return nil
}

func decodeEntry(item map[string]types.AttributeValue) (catalog.Entry, error) {
	var (
		e   catalog.Entry
		err error
	)

	dgst, err := stringAttr(item, attrDigest)
	if err != nil {
		return e, err
	}
	e.Digest, err = digest.Parse(dgst)
	if err != nil {
		return e, fmt.Errorf("invalid %s attribute: %w", attrDigest, err)
	}

	kind, err := stringAttr(item, attrKind)
	if err != nil {
		return e, err
	}
	e.Kind = catalog.Kind(kind)

	if e.Name, err = stringAttr(item, attrName); err != nil {
		return e, err
	}
	if e.Encoding, err = stringAttr(item, attrEncoding); err != nil {
		return e, err
	}

	size, err := numberAttr(item, attrSize)
	if err != nil {
		return e, err
	}
	if e.Size, err = strconv.ParseInt(size, 10, 64); err != nil {
		return e, fmt.Errorf("invalid %s attribute: %w", attrSize, err)
	}

	nnz, err := numberAttr(item, attrNonzeroCount)
	if err != nil {
		return e, err
	}
	if e.NonzeroCount, err = strconv.ParseUint(nnz, 10, 64); err != nil {
		return e, fmt.Errorf("invalid %s attribute: %w", attrNonzeroCount, err)
	}

	if v, ok := item[attrValid].(*types.AttributeValueMemberBOOL); ok {
		e.Valid = v.Value
	} else {
		return e, fmt.Errorf("missing or invalid %s attribute", attrValid)
	}

	if l, ok := item[attrShape].(*types.AttributeValueMemberL); ok {
		e.Shape = make([]uint64, 0, len(l.Value))
		for _, av := range l.Value {
			n, ok := av.(*types.AttributeValueMemberN)
			if !ok {
				return e, fmt.Errorf("invalid %s attribute", attrShape)
			}
			dim, err := strconv.ParseUint(n.Value, 10, 64)
			if err != nil {
				return e, fmt.Errorf("invalid %s attribute: %w", attrShape, err)
			}
			e.Shape = append(e.Shape, dim)
		}
	}

	created, err := stringAttr(item, attrCreatedAt)
	if err != nil {
		return e, err
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return e, fmt.Errorf("invalid %s attribute: %w", attrCreatedAt, err)
	}

	return e, nil
}

func stringAttr(item map[string]types.AttributeValue, name string) (string, error) {
	v, ok := item[name].(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("missing or invalid %s attribute", name)
	}
	return v.Value, nil
}

func numberAttr(item map[string]types.AttributeValue, name string) (string, error) {
	v, ok := item[name].(*types.AttributeValueMemberN)
	if !ok {
		return "", fmt.Errorf("missing or invalid %s attribute", name)
	}
	return v.Value, nil
}
