package repository

import (
	"context"

	"gorm.io/gorm"
)

type txReposGorm struct {
	refreshTokens RefreshTokenRepository
}

func (r *txReposGorm) RefreshTokens() RefreshTokenRepository { return r.refreshTokens }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// WithinTx commits when fn returns nil and rolls back otherwise.
func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txReposGorm{refreshTokens: NewRefreshTokenRepository(tx)})
	})
}
