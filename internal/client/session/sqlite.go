package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/contractlens/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/contractlens/internal/common"
	"github.com/dmitrijs2005/contractlens/internal/dbx"
)

// SQLiteStorage keeps the session in the local metadata table under the
// "token" and "user" keys.
type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(db *sql.DB) *SQLiteStorage {
	return &SQLiteStorage{db: db}
}

func (s *SQLiteStorage) Load(ctx context.Context) (Record, error) {
	var rec Record
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)

		token, err := repo.Get(ctx, common.SessionTokenKey)
		if err != nil {
			return err
		}
		user, err := repo.Get(ctx, common.SessionUserKey)
		if err != nil {
			return err
		}

		rec = Record{Token: token, User: user}
		return nil
	})
	if err != nil {
		return Record{}, fmt.Errorf("load session: %w", err)
	}
	return rec, nil
}

func (s *SQLiteStorage) Save(ctx context.Context, rec Record) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)

		if err := repo.Set(ctx, common.SessionTokenKey, rec.Token); err != nil {
			return err
		}
		return repo.Set(ctx, common.SessionUserKey, rec.User)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Remove(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, common.SessionTokenKey, common.SessionUserKey)
	})
	if err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
