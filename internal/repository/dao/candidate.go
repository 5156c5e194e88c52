package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrCandidateNotFound = errors.New("candidate not found")

type Candidate struct {
	ID uint `gorm:"primaryKey"`

	Name      string `gorm:"not null"`
	Kelas     string `gorm:"not null"`
	Vision    string
	Mission   string
	PhotoURL  string
	VoteCount int `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type CandidateDAO struct {
	db *gorm.DB
}

func NewCandidateDAO(db *gorm.DB) *CandidateDAO {
	return &CandidateDAO{
		db: db,
	}
}

func (d *CandidateDAO) Insert(ctx context.Context, candidate Candidate) (Candidate, error) {
	result := d.db.WithContext(ctx).Create(&candidate)
	if result.Error != nil {
		return Candidate{}, result.Error
	}

	return candidate, nil
}

func (d *CandidateDAO) FindByID(ctx context.Context, id uint) (Candidate, error) {
	var candidate Candidate

	result := d.db.WithContext(ctx).First(&candidate, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Candidate{}, ErrCandidateNotFound
		}

		return Candidate{}, result.Error
	}

	return candidate, nil
}

func (d *CandidateDAO) ListAll(ctx context.Context) ([]Candidate, error) {
	var candidates []Candidate

	result := d.db.WithContext(ctx).Order("id asc").Find(&candidates)
	if result.Error != nil {
		return nil, result.Error
	}

	return candidates, nil
}

// Update applies a partial field merge. VoteCount is deliberately not
// settable here; counts only move through Consume, Release and ResetAllVotes.
func (d *CandidateDAO) Update(ctx context.Context, id uint, fields map[string]interface{}) (Candidate, error) {
	delete(fields, "vote_count")

	result := d.db.WithContext(ctx).Model(&Candidate{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return Candidate{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Candidate{}, ErrCandidateNotFound
	}

	return d.FindByID(ctx, id)
}

func (d *CandidateDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Candidate{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCandidateNotFound
	}

	return nil
}

// ResetAllVotes zeroes every candidate's count in one statement. Tokens are
// left untouched; the generation bump invalidates in-flight sessions.
func (d *CandidateDAO) ResetAllVotes(ctx context.Context, newGeneration string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Candidate{}).Where("1 = 1").UpdateColumn("vote_count", 0)
		if result.Error != nil {
			return result.Error
		}

		return bumpGeneration(tx, newGeneration)
	})
}

func (d *CandidateDAO) DeleteAll(ctx context.Context, newGeneration string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&Candidate{}).Error; err != nil {
			return err
		}

		return bumpGeneration(tx, newGeneration)
	})
}
