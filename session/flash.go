package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Banner 是一次性提示，下一次读取后即清除
type Banner struct {
	Style   string `json:"style"` // success / warning / danger
	Message string `json:"message"`
}

type FlashStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewFlashStore(rdb *redis.Client, ttl time.Duration) *FlashStore {
	return &FlashStore{rdb: rdb, ttl: ttl}
}

func flashKey(sid string) string { return fmt.Sprintf("app:flash:%s", sid) }

func (f *FlashStore) Push(ctx context.Context, sid string, b Banner) error {
	raw, _ := json.Marshal(b)
	pipe := f.rdb.TxPipeline()
	pipe.RPush(ctx, flashKey(sid), raw)
	pipe.Expire(ctx, flashKey(sid), f.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// Pop 取出并清空该会话的全部提示
func (f *FlashStore) Pop(ctx context.Context, sid string) ([]Banner, error) {
	pipe := f.rdb.TxPipeline()
	lr := pipe.LRange(ctx, flashKey(sid), 0, -1)
	pipe.Del(ctx, flashKey(sid))
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, err
	}
	out := make([]Banner, 0, len(lr.Val()))
	for _, raw := range lr.Val() {
		var b Banner
		if err := json.Unmarshal([]byte(raw), &b); err != nil {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}
