package storage

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/redis/go-redis/v9"

	"shikshanam/internal/models"
)

type failingKV struct{}

func (failingKV) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, errors.New("backend down")
}

func (failingKV) Set(ctx context.Context, key, value string) error {
	return errors.New("backend down")
}

func TestLoadEmptyStorageReturnsDefault(t *testing.T) {
	store := NewProfileStore(NewMemoryKV())

	record := store.Load(context.Background(), "visitor-1")

	if !reflect.DeepEqual(record, models.NewProfileRecord()) {
		t.Errorf("Load() = %+v, want default record", record)
	}
	if record.User.Name != nil {
		t.Error("default record must have a null name")
	}
}

func TestLoadMalformedReturnsDefault(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "{{{"},
		{name: "json null", raw: "null"},
		{name: "wrong shape", raw: `{"gamification":{"points":"many"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := NewMemoryKV()
			kv.Set(context.Background(), Key("v"), tt.raw)
			store := NewProfileStore(kv)

			record := store.Load(context.Background(), "v")
			if !reflect.DeepEqual(record, models.NewProfileRecord()) {
				t.Errorf("Load() = %+v, want default record", record)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewProfileStore(NewMemoryKV())
	ctx := context.Background()

	record := models.NewProfileRecord()
	record.SetName("Asha")

	if err := store.Save(ctx, "visitor-1", record); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := store.Load(ctx, "visitor-1")
	if loaded.DisplayName() != "Asha" {
		t.Errorf("name = %q, want Asha", loaded.DisplayName())
	}
	if !reflect.DeepEqual(loaded, record) {
		t.Errorf("round trip changed the record:\n got %+v\nwant %+v", loaded, record)
	}
}

func TestRecordsAreKeyedPerVisitor(t *testing.T) {
	store := NewProfileStore(NewMemoryKV())
	ctx := context.Background()

	record := models.NewProfileRecord()
	record.SetName("Asha")
	if err := store.Save(ctx, "a", record); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if store.Load(ctx, "b").HasName() {
		t.Error("visitor b should not see visitor a's record")
	}
}

func TestFailingBackend(t *testing.T) {
	store := NewProfileStore(failingKV{})
	ctx := context.Background()

	if record := store.Load(ctx, "v"); !reflect.DeepEqual(record, models.NewProfileRecord()) {
		t.Errorf("Load() on failing backend = %+v, want default", record)
	}
	if err := store.Save(ctx, "v", models.NewProfileRecord()); err == nil {
		t.Error("Save() on failing backend should return an error")
	}
}

func TestKey(t *testing.T) {
	if got := Key("abc"); got != "shikshanamUserData:abc" {
		t.Errorf("Key() = %q", got)
	}
}

func TestRedisKV(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx := context.Background()
	kv := NewRedisKV(client)
	key := Key("redis-test")
	defer client.Del(ctx, key)

	if _, ok, err := kv.Get(ctx, key); err != nil || ok {
		t.Fatalf("Get() on missing key = (%v, %v)", ok, err)
	}

	store := NewProfileStore(kv)
	record := models.NewProfileRecord()
	record.SetName("Asha")
	if err := store.Save(ctx, "redis-test", record); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if got := store.Load(ctx, "redis-test"); got.DisplayName() != "Asha" {
		t.Errorf("name = %q, want Asha", got.DisplayName())
	}
}
