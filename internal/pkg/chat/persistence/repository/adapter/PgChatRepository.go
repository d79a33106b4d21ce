package adapter

import (
	"context"
	"errors"
	"time"

	chat "fictionchat/internal/pkg/chat/application/domain"
	port "fictionchat/internal/pkg/chat/persistence/repository/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

// Ensure interface is satisfied
var _ port.ChatRepository = (*PgChatRepository)(nil)

func (r *PgChatRepository) ResolveConversation(ctx context.Context, userA, userB string) (port.ResolveResult, error) {
	if r == nil || r.pool == nil {
		return port.ResolveResult{}, errors.New("PgChatRepository: nil pool")
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return port.ResolveResult{}, err
	}
	defer tx.Rollback(ctx)

	res, err := resolveConversationTx(ctx, tx, userA, userB)
	if err != nil {
		return port.ResolveResult{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return port.ResolveResult{}, err
	}
	return res, nil
}

// resolveConversationTx finds or creates the conversation for the unordered pair
// within the caller's transaction. The conversation row stores the pair in
// lexicographic order under a UNIQUE constraint, so two racing creators converge:
// the loser's INSERT hits the conflict, inserts nothing, and re-reads the
// winner's row.
func resolveConversationTx(ctx context.Context, tx pgx.Tx, userA, userB string) (port.ResolveResult, error) {
	lo, hi := userA, userB
	if lo > hi {
		lo, hi = hi, lo
	}

	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO chat.conversation (user_lo, user_hi)
		VALUES ($1, $2)
		ON CONFLICT (user_lo, user_hi) DO NOTHING
		RETURNING id
	`, lo, hi).Scan(&id)

	switch {
	case err == nil:
		// New conversation: register both participants.
		if _, err := tx.Exec(ctx, `
			INSERT INTO chat.participant (conversation_id, user_id)
			VALUES ($1, $2), ($1, $3)
		`, id, lo, hi); err != nil {
			return port.ResolveResult{}, err
		}
		return port.ResolveResult{ConversationID: id, Created: true}, nil

	case errors.Is(err, pgx.ErrNoRows):
		// Lost the race or the conversation already existed; read the winning row.
		err := tx.QueryRow(ctx, `
			SELECT id FROM chat.conversation WHERE user_lo = $1 AND user_hi = $2
		`, lo, hi).Scan(&id)
		if err != nil {
			return port.ResolveResult{}, err
		}
		return port.ResolveResult{ConversationID: id, Created: false}, nil

	default:
		return port.ResolveResult{}, err
	}
}

func (r *PgChatRepository) SendMessage(ctx context.Context, senderID, toID, content string) (*chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	res, err := resolveConversationTx(ctx, tx, senderID, toID)
	if err != nil {
		return nil, err
	}

	var messageID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO chat.message (conversation_id, sender_id, content)
		VALUES ($1, $2, $3)
		RETURNING id
	`, res.ConversationID, senderID, content).Scan(&messageID)
	if err != nil {
		return nil, err
	}

	// Re-read joined with the sender identity to produce the caller-facing shape.
	var msg chat.Message
	err = tx.QueryRow(ctx, `
		SELECT m.id, m.conversation_id, m.content, m.created_at,
		       u.id, u.fullname, u.profile_picture
		FROM chat.message m
		JOIN chat.app_user u ON u.id = m.sender_id
		WHERE m.id = $1
	`, messageID).Scan(
		&msg.ID, &msg.ConversationID, &msg.Content, &msg.CreatedAt,
		&msg.Sender.ID, &msg.Sender.FullName, &msg.Sender.ProfilePicture,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	msg.FromMe = true
	return &msg, nil
}

func (r *PgChatRepository) AppendReadReceipt(ctx context.Context, userID string, conversationID int64) (*chat.ChatActivity, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	var activity chat.ChatActivity
	err := r.pool.QueryRow(ctx, `
		INSERT INTO chat.chat_activity (user_id, conversation_id, last_read)
		VALUES ($1, $2, now())
		RETURNING id, user_id, conversation_id, last_read
	`, userID, conversationID).Scan(
		&activity.ID, &activity.UserID, &activity.ConversationID, &activity.LastRead,
	)
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *PgChatRepository) ListConversations(ctx context.Context, userID string) ([]chat.ConversationSummary, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.created_at,
		       me_u.id, me_u.fullname, me_u.profile_picture,
		       other_u.id, other_u.fullname, other_u.profile_picture,
		       lm.id, lm.content, lm.sender_id, lm.created_at
		FROM chat.conversation c
		JOIN chat.participant me ON me.conversation_id = c.id AND me.user_id = $1
		JOIN chat.app_user me_u ON me_u.id = me.user_id
		JOIN chat.participant other ON other.conversation_id = c.id AND other.user_id <> $1
		JOIN chat.app_user other_u ON other_u.id = other.user_id
		LEFT JOIN LATERAL (
			SELECT id, content, sender_id, created_at
			FROM chat.message
			WHERE conversation_id = c.id
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		) lm ON true
		ORDER BY c.created_at DESC, c.id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []chat.ConversationSummary
	for rows.Next() {
		var (
			s         chat.ConversationSummary
			me, other chat.User
			lmID      *int64
			lm        chat.LastMessage
			lmContent *string
			lmSender  *string
		)
		var lmCreatedAt *time.Time
		if err := rows.Scan(
			&s.ID, &s.CreatedAt,
			&me.ID, &me.FullName, &me.ProfilePicture,
			&other.ID, &other.FullName, &other.ProfilePicture,
			&lmID, &lmContent, &lmSender, &lmCreatedAt,
		); err != nil {
			return nil, err
		}
		s.Participants = []chat.User{me, other}
		s.OtherUser = other
		if lmID != nil {
			lm = chat.LastMessage{ID: *lmID, Content: *lmContent, SenderID: *lmSender, CreatedAt: *lmCreatedAt}
			s.LastMessage = &lm
		}
		summaries = append(summaries, s)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return summaries, nil
}

func (r *PgChatRepository) ListMessages(ctx context.Context, conversationID int64, requestingUserID string) ([]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT m.id, m.conversation_id, m.content, m.created_at,
		       u.id, u.fullname, u.profile_picture,
		       (m.sender_id = $2) AS is_from_me
		FROM chat.message m
		JOIN chat.app_user u ON u.id = m.sender_id
		WHERE m.conversation_id = $1
		ORDER BY m.created_at ASC, m.id ASC
	`, conversationID, requestingUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []chat.Message
	for rows.Next() {
		var msg chat.Message
		if err := rows.Scan(
			&msg.ID, &msg.ConversationID, &msg.Content, &msg.CreatedAt,
			&msg.Sender.ID, &msg.Sender.FullName, &msg.Sender.ProfilePicture,
			&msg.FromMe,
		); err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return msgs, nil
}

func (r *PgChatRepository) IsParticipant(ctx context.Context, conversationID int64, userID string) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgChatRepository: nil pool")
	}
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM chat.participant
			WHERE conversation_id = $1 AND user_id = $2
		)
	`, conversationID, userID).Scan(&exists)
	return exists, err
}

func (r *PgChatRepository) Reset(ctx context.Context) error {
	if r == nil || r.pool == nil {
		return errors.New("PgChatRepository: nil pool")
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	statements := []string{
		`DELETE FROM chat.chat_activity`,
		`DELETE FROM chat.message`,
		`DELETE FROM chat.participant`,
		`DELETE FROM chat.conversation`,
		`DELETE FROM chat.app_user`,
		`ALTER SEQUENCE chat.chat_activity_id_seq RESTART WITH 1`,
		`ALTER SEQUENCE chat.message_id_seq RESTART WITH 1`,
		`ALTER SEQUENCE chat.conversation_id_seq RESTART WITH 1`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
