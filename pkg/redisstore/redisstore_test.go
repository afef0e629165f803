package redisstore

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Bu testler ağ erişimi gerektirmeyen yolları kapsar; istemci hiç bağlanmaz.
func newOfflineStorage(t *testing.T) *Storage {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = client.Close() })
	return NewFromClient(client, "sess:", 0)
}

func TestKeyPrefix(t *testing.T) {
	t.Parallel()

	s := newOfflineStorage(t)
	assert.Equal(t, "sess:abc", s.key("abc"))
	assert.Equal(t, defaultOpTimeout, s.opTimeout)
}

func TestEmptyKeysAndValuesAreNoops(t *testing.T) {
	t.Parallel()

	s := newOfflineStorage(t)

	val, err := s.Get("")
	require.NoError(t, err)
	assert.Nil(t, val)

	assert.NoError(t, s.Set("", []byte("x"), time.Minute))
	assert.NoError(t, s.Set("key", nil, time.Minute))
	assert.NoError(t, s.Delete(""))
}
