package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"recruitment-platform/internal/domain"
)

type messageRepo struct {
	db DB
}

func NewMessageRepository(db DB) domain.MessageRepository {
	return &messageRepo{db: db}
}

const messageSelect = `
	SELECT m.id, m.sender_id, m.receiver_id, m.content, m.sent_at, s.username, rc.username
	FROM messages m
	JOIN users s ON s.id = m.sender_id
	JOIN users rc ON rc.id = m.receiver_id`

func (r *messageRepo) queryMessages(ctx context.Context, query string, args ...interface{}) ([]domain.Message, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Message, error) {
		var m domain.Message
		err := row.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.SentAt, &m.SenderUsername, &m.ReceiverUsername)
		return m, err
	})
}

func (r *messageRepo) Create(ctx context.Context, msg *domain.Message) error {
	query := `INSERT INTO messages (sender_id, receiver_id, content, sent_at)
              VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRow(ctx, query, msg.SenderID, msg.ReceiverID, msg.Content, msg.SentAt).Scan(&msg.ID)
	if code, _ := pgCode(err); code == pgForeignKeyViolation {
		return domain.ErrNotFound
	}
	return err
}

// ListFromTo returns one direction of a conversation in insertion order.
func (r *messageRepo) ListFromTo(ctx context.Context, senderID, receiverID int64) ([]domain.Message, error) {
	return r.queryMessages(ctx, messageSelect+` WHERE m.sender_id = $1 AND m.receiver_id = $2 ORDER BY m.id`, senderID, receiverID)
}

func (r *messageRepo) ListByParticipant(ctx context.Context, userID int64) ([]domain.Message, error) {
	return r.queryMessages(ctx, messageSelect+` WHERE m.sender_id = $1 OR m.receiver_id = $1 ORDER BY m.sent_at DESC, m.id DESC`, userID)
}
