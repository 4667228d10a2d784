package chatbot

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

type Step string

const (
	StepService Step = "service"
	StepDate    Step = "date"
	StepSlot    Step = "slot"
	StepName    Step = "name"
	StepConfirm Step = "confirm"
)

// Session is the conversation state for one phone number. Stored in Redis
// with a TTL so abandoned conversations expire on their own.
type Session struct {
	ID       string `json:"id"`
	Phone    string `json:"phone"`
	BarberID uint   `json:"barber_id"`
	Step     Step   `json:"step"`

	ServiceID uint     `json:"service_id"`
	Date      string   `json:"date"`
	Slots     []string `json:"slots"`
	Slot      string   `json:"slot"`
	Name      string   `json:"name"`
}

func NewSession(barberID uint, phone string) *Session {
	return &Session{
		ID:       uuid.NewString(),
		Phone:    phone,
		BarberID: barberID,
		Step:     StepService,
	}
}

type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func sessionKey(phone string) string {
	return "chatbot:session:" + phone
}

// Get returns nil without error when no conversation is in progress.
func (s *SessionStore) Get(ctx context.Context, phone string) (*Session, error) {
	b, err := s.rdb.Get(ctx, sessionKey(phone)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SessionStore) Save(ctx context.Context, sess *Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionKey(sess.Phone), b, s.ttl).Err()
}

func (s *SessionStore) Delete(ctx context.Context, phone string) error {
	return s.rdb.Del(ctx, sessionKey(phone)).Err()
}
