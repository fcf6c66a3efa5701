package rediscache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"child-care-tracker/internal/domain/children"
)

type fakeKV struct {
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	v, ok := f.data[key]
	if !ok {
		return "", errMiss
	}
	return v, nil
}

func (f *fakeKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.data[key] = value
	f.ttls[key] = ttl
	return nil
}

func TestCache_PutGet(t *testing.T) {
	kv := newFakeKV()
	c := New(kv, 0)
	ctx := context.Background()

	birth := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, c.Put(ctx, "u-1", []children.RemoteChild{
		{ExternalID: "ext-1", Name: "Luna", BirthDate: &birth},
	}))
	assert.Equal(t, DefaultTTL, kv.ttls["cct:children:u-1"])

	items, ok, err := c.Get(ctx, "u-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "Luna", items[0].Name)
	require.NotNil(t, items[0].BirthDate)
	assert.True(t, birth.Equal(*items[0].BirthDate))
}

func TestCache_MissIsNotAnError(t *testing.T) {
	c := New(newFakeKV(), time.Hour)

	items, ok, err := c.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, items)
}

func TestCache_EmptyListIsAHit(t *testing.T) {
	c := New(newFakeKV(), time.Hour)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "u-1", nil))

	items, ok, err := c.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, items)
}

func TestCache_PropagatesBackendErrors(t *testing.T) {
	kv := newFakeKV()
	kv.err = errors.New("connection refused")
	c := New(kv, time.Hour)

	_, _, err := c.Get(context.Background(), "u-1")
	assert.Error(t, err)
}

func TestCache_CorruptPayload(t *testing.T) {
	kv := newFakeKV()
	kv.data["cct:children:u-1"] = "{not json"
	c := New(kv, time.Hour)

	_, ok, err := c.Get(context.Background(), "u-1")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestOpen_InvalidURL(t *testing.T) {
	_, _, err := Open(context.Background(), "not-a-redis-url", time.Hour)
	assert.Error(t, err)
}
