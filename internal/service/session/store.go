package session

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"tipjar/internal/service/tipjar"
	"tipjar/pkg/crypto_util"
	"tipjar/pkg/logger"
	"tipjar/pkg/monitor"
	"tipjar/pkg/safe_random"
)

const (
	CookieName = "tipjar_sid"
	HeaderName = "X-Session-ID"

	DefaultTTL = 30 * time.Minute
)

// Store 内存中的会话表，过期或删除时断开钱包
// 每次 Get 都会续期 (滑动过期)
type Store struct {
	c   *gocache.Cache
	svc *tipjar.Service
	ttl time.Duration
}

func NewStore(svc *tipjar.Service, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := gocache.New(ttl, ttl/2)
	c.OnEvicted(func(id string, v interface{}) {
		if client, ok := v.(*tipjar.Client); ok {
			client.Disconnect()
		}
		monitor.Business.ActiveSessions.Dec()
		logger.Debug("会话已移除", zap.String("sid", crypto_util.Fingerprint(id)))
	})
	return &Store{c: c, svc: svc, ttl: ttl}
}

// Get 返回已存在的会话并续期
func (s *Store) Get(id string) (*tipjar.Client, bool) {
	if id == "" {
		return nil, false
	}
	v, found := s.c.Get(id)
	if !found {
		return nil, false
	}
	client := v.(*tipjar.Client)
	if !s.touch(id, client) {
		return nil, false
	}
	return client, true
}

// touch 续期已存在的会话；会话在此期间已被移除则返回 false，不会重新插入
func (s *Store) touch(id string, client *tipjar.Client) bool {
	return s.c.Replace(id, client, s.ttl) == nil
}

// GetOrCreate id 未知或为空时生成新的会话 ID，created 表示是否新建
func (s *Store) GetOrCreate(id string) (string, *tipjar.Client, bool, error) {
	if client, ok := s.Get(id); ok {
		return id, client, false, nil
	}

	newID, err := safe_random.NewSessionID()
	if err != nil {
		return "", nil, false, err
	}
	client := s.svc.NewClient()
	if err := s.c.Add(newID, client, s.ttl); err != nil {
		// 随机 ID 冲突
		return "", nil, false, err
	}
	monitor.Business.ActiveSessions.Inc()
	return newID, client, true, nil
}

// Delete 移除会话，OnEvicted 负责断开钱包
func (s *Store) Delete(id string) {
	s.c.Delete(id)
}

func (s *Store) Service() *tipjar.Service {
	return s.svc
}

func (s *Store) Count() int {
	return s.c.ItemCount()
}

// Flush 关闭服务时断开所有会话
func (s *Store) Flush() {
	for id := range s.c.Items() {
		s.c.Delete(id)
	}
}
