package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/oauth2"
)

// SaveCredential stores the delegated calendar token for an owner,
// replacing any previous grant. The refresh token is kept from the old
// grant if Google omits it on re-consent.
func (s *Store) SaveCredential(ctx context.Context, ownerID string, tok *oauth2.Token) error {
	q := `INSERT INTO calendar_credentials (owner_id, access_token, refresh_token, token_type, expiry, updated_at)
	      VALUES ($1,$2,$3,$4,$5,$6)
	      ON CONFLICT (owner_id) DO UPDATE SET
	        access_token=excluded.access_token,
	        refresh_token=CASE WHEN excluded.refresh_token='' THEN calendar_credentials.refresh_token ELSE excluded.refresh_token END,
	        token_type=excluded.token_type,
	        expiry=excluded.expiry,
	        updated_at=excluded.updated_at`
	_, err := s.pool.Exec(ctx, q,
		ownerID, tok.AccessToken, tok.RefreshToken, tok.TokenType, tok.Expiry, time.Now().UTC())
	return err
}

// LoadCredential returns the stored token for an owner. ErrNotFound means
// the owner never connected a calendar.
func (s *Store) LoadCredential(ctx context.Context, ownerID string) (*oauth2.Token, error) {
	var tok oauth2.Token
	err := s.pool.QueryRow(ctx,
		`SELECT access_token, refresh_token, token_type, expiry
		 FROM calendar_credentials WHERE owner_id=$1`, ownerID).
		Scan(&tok.AccessToken, &tok.RefreshToken, &tok.TokenType, &tok.Expiry)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tok, nil
}
