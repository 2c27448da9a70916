package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/sparsepack/blobstore"
	"github.com/hupe1980/sparsepack/blobstore/blobstoretest"
	"github.com/hupe1980/sparsepack/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeClient is an in-memory single-bucket S3. Multipart calls are not
// implemented; test blobs stay below the part size.
type fakeClient struct {
	manager.UploadAPIClient

	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeClient() *fakeClient {
	return &fakeClient{objects: make(map[string][]byte)}
}

func (f *fakeClient) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(params.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeClient) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(bytes.Clone(data)))}, nil
}

func (f *fakeClient) DeleteObject(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeClient) ListObjectsV2(_ context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(params.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	for _, k := range keys {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	return out, nil
}

func TestStore_Conformance(t *testing.T) {
	blobstoretest.Run(t, NewStore(newFakeClient(), "test-bucket", "tenant/"))
}

func TestStore_KeysUsePrefix(t *testing.T) {
	client := newFakeClient()
	store := NewStore(client, "test-bucket", "tenant/")

	require.NoError(t, store.Put(context.Background(), "vectors/abc", []byte("x")))

	client.mu.Lock()
	_, ok := client.objects["tenant/vectors/abc"]
	client.mu.Unlock()
	assert.True(t, ok)
}

func TestStore_IOLimit(t *testing.T) {
	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 30})
	blobstoretest.Run(t, NewStore(newFakeClient(), "test-bucket", "", WithIOLimit(rc)))
}

func TestStore_IOLimitThrottles(t *testing.T) {
	client := newFakeClient()
	data := make([]byte, 4000)

	slow := func() *Store {
		rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1000})
		return NewStore(client, "test-bucket", "", WithIOLimit(rc))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	require.Error(t, slow().Put(ctx, "vectors/big", data))

	require.NoError(t, NewStore(client, "test-bucket", "").Put(context.Background(), "vectors/big", data))

	_, err := slow().Get(ctx, "vectors/big")
	assert.Error(t, err)
}

type mockClient struct {
	manager.UploadAPIClient
	mock.Mock
}

func (m *mockClient) GetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.GetObjectOutput)
	return out, args.Error(1)
}

func (m *mockClient) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.DeleteObjectOutput)
	return out, args.Error(1)
}

func (m *mockClient) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.ListObjectsV2Output)
	return out, args.Error(1)
}

func TestStore_Get(t *testing.T) {
	mc := new(mockClient)
	store := NewStore(mc, "test-bucket", "prefix")

	t.Run("NotFound", func(t *testing.T) {
		mc.On("GetObject", mock.Anything, mock.MatchedBy(func(input *s3.GetObjectInput) bool {
			return *input.Bucket == "test-bucket" && *input.Key == "prefix/foo"
		})).Return(nil, &types.NotFound{}).Once()

		_, err := store.Get(context.Background(), "foo")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("OtherError", func(t *testing.T) {
		boom := errors.New("boom")
		mc.On("GetObject", mock.Anything, mock.Anything).Return(nil, boom).Once()

		_, err := store.Get(context.Background(), "bar")
		assert.ErrorIs(t, err, boom)
	})

	mc.AssertExpectations(t)
}

func TestStore_Delete(t *testing.T) {
	mc := new(mockClient)
	store := NewStore(mc, "test-bucket", "prefix")

	mc.On("DeleteObject", mock.Anything, mock.MatchedBy(func(input *s3.DeleteObjectInput) bool {
		return *input.Bucket == "test-bucket" && *input.Key == "prefix/del"
	})).Return(&s3.DeleteObjectOutput{}, nil).Once()

	assert.NoError(t, store.Delete(context.Background(), "del"))
	mc.AssertExpectations(t)
}

func TestStore_List_Pagination(t *testing.T) {
	mc := new(mockClient)
	store := NewStore(mc, "test-bucket", "prefix/")

	// Page 1
	mc.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(input *s3.ListObjectsV2Input) bool {
		return input.ContinuationToken == nil && *input.Prefix == "prefix/vectors/"
	})).Return(&s3.ListObjectsV2Output{
		IsTruncated:           aws.Bool(true),
		NextContinuationToken: aws.String("token"),
		Contents:              []types.Object{{Key: aws.String("prefix/vectors/2")}},
	}, nil).Once()

	// Page 2
	mc.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(input *s3.ListObjectsV2Input) bool {
		return input.ContinuationToken != nil && *input.ContinuationToken == "token"
	})).Return(&s3.ListObjectsV2Output{
		IsTruncated: aws.Bool(false),
		Contents:    []types.Object{{Key: aws.String("prefix/vectors/1")}},
	}, nil).Once()

	keys, err := store.List(context.Background(), "vectors/")
	require.NoError(t, err)
	assert.Equal(t, []string{"vectors/1", "vectors/2"}, keys)
	mc.AssertExpectations(t)
}
