package dynamodb

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/sparsepack/catalog"
	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockDDBClient is an in-memory DynamoDB mock for testing.
type mockDDBClient struct {
	mu    sync.RWMutex
	items map[string]map[string]types.AttributeValue
}

func newMockDDBClient() *mockDDBClient {
	return &mockDDBClient{
		items: make(map[string]map[string]types.AttributeValue),
	}
}

func (m *mockDDBClient) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := params.Item[attrDigest].(*types.AttributeValueMemberS).Value
	m.items[key] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDDBClient) GetItem(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key := params.Key[attrDigest].(*types.AttributeValueMemberS).Value
	return &dynamodb.GetItemOutput{Item: m.items[key]}, nil
}

func (m *mockDDBClient) DeleteItem(_ context.Context, params *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := params.Key[attrDigest].(*types.AttributeValueMemberS).Value
	delete(m.items, key)
	return &dynamodb.DeleteItemOutput{}, nil
}

func TestCatalog_RoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newMockDDBClient()
	c := NewCatalog(client, "sparsepack-catalog")

	d := digest.FromString("vector archive")
	want := catalog.Entry{
		Digest:       d,
		Kind:         catalog.KindVector,
		Name:         "vectors/" + d.Encoded(),
		Size:         128,
		Valid:        true,
		NonzeroCount: 7,
		Shape:        []uint64{1000},
		Encoding:     "flatbuffers",
		CreatedAt:    time.Date(2024, 5, 1, 12, 0, 0, 123, time.UTC),
	}
	require.NoError(t, c.Record(ctx, want))

	got, err := c.Lookup(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, c.Remove(ctx, d))
	_, err = c.Lookup(ctx, d)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestCatalog_ItemLayout(t *testing.T) {
	client := newMockDDBClient()
	c := NewCatalog(client, "t")
	d := digest.FromString("m")

	require.NoError(t, c.Record(context.Background(), catalog.Entry{
		Digest: d,
		Kind:   catalog.KindMatrix,
		Shape:  []uint64{4, 3},
	}))

	item := client.items[d.String()]
	require.NotNil(t, item)
	assert.Equal(t, "matrix", item[attrKind].(*types.AttributeValueMemberS).Value)

	shape := item[attrShape].(*types.AttributeValueMemberL).Value
	require.Len(t, shape, 2)
	assert.Equal(t, "4", shape[0].(*types.AttributeValueMemberN).Value)
	assert.Equal(t, "3", shape[1].(*types.AttributeValueMemberN).Value)
}

func TestCatalog_RejectsInvalidDigest(t *testing.T) {
	c := NewCatalog(newMockDDBClient(), "t")
	assert.Error(t, c.Record(context.Background(), catalog.Entry{Digest: "bogus"}))
}

func TestCatalog_DecodeErrors(t *testing.T) {
	_, err := decodeEntry(map[string]types.AttributeValue{})
	assert.Error(t, err)

	_, err = decodeEntry(map[string]types.AttributeValue{
		attrDigest: &types.AttributeValueMemberS{Value: "sha256:zz"},
	})
	assert.Error(t, err)
}

type failingClient struct {
	mock.Mock
}

func (f *failingClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := f.Called(ctx, params)
	return nil, args.Error(1)
}

func (f *failingClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	args := f.Called(ctx, params)
	return nil, args.Error(1)
}

func (f *failingClient) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	args := f.Called(ctx, params)
	return nil, args.Error(1)
}

func TestCatalog_ClientErrors(t *testing.T) {
	boom := errors.New("throttled")
	client := new(failingClient)
	client.On("PutItem", mock.Anything, mock.Anything).Return(nil, boom)
	client.On("GetItem", mock.Anything, mock.Anything).Return(nil, boom)
	client.On("DeleteItem", mock.Anything, mock.Anything).Return(nil, boom)

	c := NewCatalog(client, "t")
	d := digest.FromString("x")

	assert.ErrorIs(t, c.Record(context.Background(), catalog.Entry{Digest: d}), boom)
	_, err := c.Lookup(context.Background(), d)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, c.Remove(context.Background(), d), boom)
}
