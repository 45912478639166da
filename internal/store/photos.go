package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SetPhoto stores a breeder's photo. It returns the number of rows affected.
func (s *Store) SetPhoto(ctx context.Context, id int64, data []byte, mime string) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		s.db.Rebind(`UPDATE breeders SET photo = ?, photo_mime = ? WHERE id = ?`),
		data, mime, id,
	)
	if err != nil {
		return 0, fmt.Errorf("setting breeder photo: %w", err)
	}
	return result.RowsAffected()
}

// DeletePhoto clears a breeder's photo. It returns the number of rows affected.
func (s *Store) DeletePhoto(ctx context.Context, id int64) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		s.db.Rebind(`UPDATE breeders SET photo = NULL, photo_mime = NULL WHERE id = ?`), id,
	)
	if err != nil {
		return 0, fmt.Errorf("deleting breeder photo: %w", err)
	}
	return result.RowsAffected()
}

// Photo returns a breeder's photo and its MIME type. Data is nil when the
// breeder does not exist or has no photo.
func (s *Store) Photo(ctx context.Context, id int64) ([]byte, string, error) {
	var data []byte
	var mime sql.NullString
	err := s.db.QueryRowContext(ctx,
		s.db.Rebind(`SELECT photo, photo_mime FROM breeders WHERE id = ?`), id,
	).Scan(&data, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting breeder photo: %w", err)
	}
	return data, mime.String, nil
}
