package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrTokenAlreadyUsed = errors.New("token already used")
)

type Token struct {
	ID uint `gorm:"primaryKey"`

	Token       string `gorm:"index;not null"`
	Used        bool   `gorm:"not null;default:false"`
	CandidateID *uint  `gorm:"index"`

	Type          string `gorm:"not null;default:student"`
	OriginalIndex int    `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type TokenDAO struct {
	db *gorm.DB
}

func NewTokenDAO(db *gorm.DB) *TokenDAO {
	return &TokenDAO{
		db: db,
	}
}

func (d *TokenDAO) InsertBatch(ctx context.Context, tokens []Token) ([]Token, error) {
	result := d.db.WithContext(ctx).Create(&tokens)
	if result.Error != nil {
		return nil, result.Error
	}

	return tokens, nil
}

func (d *TokenDAO) FindByID(ctx context.Context, id uint) (Token, error) {
	var token Token

	result := d.db.WithContext(ctx).First(&token, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Token{}, ErrTokenNotFound
		}

		return Token{}, result.Error
	}

	return token, nil
}

func (d *TokenDAO) FindByString(ctx context.Context, tokenString string) (Token, error) {
	var token Token

	result := d.db.WithContext(ctx).First(&token, "token = ?", tokenString)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Token{}, ErrTokenNotFound
		}

		return Token{}, result.Error
	}

	return token, nil
}

func (d *TokenDAO) ListAll(ctx context.Context) ([]Token, error) {
	var tokens []Token

	result := d.db.WithContext(ctx).Order("original_index asc, id asc").Find(&tokens)
	if result.Error != nil {
		return nil, result.Error
	}

	return tokens, nil
}

// Consume marks the token used and bound to the candidate, and bumps the
// candidate's vote count, in a single transaction. The token update is
// conditional on `used` still being false, so a concurrent session or a
// double submit loses cleanly with ErrTokenAlreadyUsed instead of
// double-counting.
func (d *TokenDAO) Consume(ctx context.Context, tokenID, candidateID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Token{}).
			Where("id = ? AND used = ?", tokenID, false).
			Updates(map[string]interface{}{
				"used":         true,
				"candidate_id": candidateID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&Token{}).Where("id = ?", tokenID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrTokenNotFound
			}

			return ErrTokenAlreadyUsed
		}

		result = tx.Model(&Candidate{}).
			Where("id = ?", candidateID).
			UpdateColumn("vote_count", gorm.Expr("vote_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCandidateNotFound
		}

		return nil
	})
}

// MarkUsed flips an unused token to used without binding a candidate or
// counting a vote. Administrative override only.
func (d *TokenDAO) MarkUsed(ctx context.Context, id uint) (Token, error) {
	var token Token

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&token, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTokenNotFound
			}

			return err
		}

		if token.Used {
			return ErrTokenAlreadyUsed
		}

		token.Used = true

		return tx.Model(&token).Update("used", true).Error
	})
	if err != nil {
		return Token{}, err
	}

	return token, nil
}

// Release un-marks a used token. If the token was bound to a candidate, that
// candidate's vote count is decremented by one, floored at zero. This is the
// only path besides a full reset that ever decrements a count.
func (d *TokenDAO) Release(ctx context.Context, id uint) (Token, error) {
	var token Token

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&token, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTokenNotFound
			}

			return err
		}

		if token.Used && token.CandidateID != nil {
			result := tx.Model(&Candidate{}).
				Where("id = ? AND vote_count > 0", *token.CandidateID).
				UpdateColumn("vote_count", gorm.Expr("vote_count - ?", 1))
			if result.Error != nil {
				return result.Error
			}
		}

		result := tx.Model(&token).Updates(map[string]interface{}{
			"used":         false,
			"candidate_id": nil,
		})
		if result.Error != nil {
			return result.Error
		}

		token.Used = false
		token.CandidateID = nil

		return nil
	})
	if err != nil {
		return Token{}, err
	}

	return token, nil
}

func (d *TokenDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Token{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTokenNotFound
	}

	return nil
}

// DeleteAll removes every token and moves the election to a new generation
// so that in-flight ballot sessions cannot confirm against the wiped store.
func (d *TokenDAO) DeleteAll(ctx context.Context, newGeneration string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&Token{}).Error; err != nil {
			return err
		}

		return bumpGeneration(tx, newGeneration)
	})
}
