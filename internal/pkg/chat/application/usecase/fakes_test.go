package usecase

import (
	"context"
	"time"

	cacheport "fictionchat/internal/infrastructure/cache/port"
	chat "fictionchat/internal/pkg/chat/application/domain"
	port "fictionchat/internal/pkg/chat/persistence/repository/port"
)

// fakeChatRepo is an in-memory stand-in for the Postgres repository. It keys
// conversations by the ordered user pair, mirroring the database uniqueness
// constraint.
type fakeChatRepo struct {
	nextConvoID int64
	nextMsgID   int64
	convos      map[[2]string]int64
	members     map[int64][]string
	messages    []chat.Message
	receipts    []chat.ChatActivity

	sendCalls int
	failWith  error
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		convos:  make(map[[2]string]int64),
		members: make(map[int64][]string),
	}
}

func orderedPair(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

func (f *fakeChatRepo) ResolveConversation(ctx context.Context, userA, userB string) (port.ResolveResult, error) {
	if f.failWith != nil {
		return port.ResolveResult{}, f.failWith
	}
	pair := orderedPair(userA, userB)
	if id, ok := f.convos[pair]; ok {
		return port.ResolveResult{ConversationID: id, Created: false}, nil
	}
	f.nextConvoID++
	f.convos[pair] = f.nextConvoID
	f.members[f.nextConvoID] = []string{pair[0], pair[1]}
	return port.ResolveResult{ConversationID: f.nextConvoID, Created: true}, nil
}

func (f *fakeChatRepo) SendMessage(ctx context.Context, senderID, toID, content string) (*chat.Message, error) {
	f.sendCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	res, err := f.ResolveConversation(ctx, senderID, toID)
	if err != nil {
		return nil, err
	}
	f.nextMsgID++
	msg := chat.Message{
		ID:             f.nextMsgID,
		ConversationID: res.ConversationID,
		Sender:         chat.User{ID: senderID, FullName: "User " + senderID},
		Content:        content,
		CreatedAt:      time.Now().Add(time.Duration(f.nextMsgID) * time.Millisecond),
		FromMe:         true,
	}
	f.messages = append(f.messages, msg)
	return &msg, nil
}

func (f *fakeChatRepo) AppendReadReceipt(ctx context.Context, userID string, conversationID int64) (*chat.ChatActivity, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	receipt := chat.ChatActivity{
		ID:             int64(len(f.receipts) + 1),
		UserID:         userID,
		ConversationID: conversationID,
		LastRead:       time.Now().Add(time.Duration(len(f.receipts)) * time.Millisecond),
	}
	f.receipts = append(f.receipts, receipt)
	return &receipt, nil
}

func (f *fakeChatRepo) ListConversations(ctx context.Context, userID string) ([]chat.ConversationSummary, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []chat.ConversationSummary
	for pair, id := range f.convos {
		if pair[0] != userID && pair[1] != userID {
			continue
		}
		out = append(out, chat.ConversationSummary{Conversation: chat.Conversation{ID: id}})
	}
	return out, nil
}

func (f *fakeChatRepo) ListMessages(ctx context.Context, conversationID int64, requestingUserID string) ([]chat.Message, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []chat.Message
	for _, m := range f.messages {
		if m.ConversationID != conversationID {
			continue
		}
		m.FromMe = m.Sender.ID == requestingUserID
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeChatRepo) IsParticipant(ctx context.Context, conversationID int64, userID string) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	for _, id := range f.members[conversationID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeChatRepo) Reset(ctx context.Context) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.nextConvoID = 0
	f.nextMsgID = 0
	f.convos = make(map[[2]string]int64)
	f.members = make(map[int64][]string)
	f.messages = nil
	f.receipts = nil
	return nil
}

var _ port.ChatRepository = (*fakeChatRepo)(nil)

// fakeUserRepo serves a fixed directory and counts reads.
type fakeUserRepo struct {
	users     []chat.User
	listCalls int
	syncCalls int
	failWith  error
}

func (f *fakeUserRepo) ListAll(ctx context.Context) ([]chat.User, error) {
	f.listCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	return append([]chat.User(nil), f.users...), nil
}

func (f *fakeUserRepo) SyncFromHost(ctx context.Context) (int, error) {
	f.syncCalls++
	if f.failWith != nil {
		return 0, f.failWith
	}
	return len(f.users), nil
}

// fakeCache is a map-backed cache that ignores TTLs.
type fakeCache struct {
	entries map[string]string
}

func newFakeCache() *fakeCache { return &fakeCache{entries: make(map[string]string)} }

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.entries[key]
	if !ok {
		return "", cacheport.ErrMiss
	}
	return v, nil
}

func (f *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.entries[key] = value
	return nil
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) (int64, error) {
	var n int64
	for _, k := range keys {
		if _, ok := f.entries[k]; ok {
			delete(f.entries, k)
			n++
		}
	}
	return n, nil
}

func (f *fakeCache) Ping(ctx context.Context) error { return nil }
func (f *fakeCache) Close() error                   { return nil }
