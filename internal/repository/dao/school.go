package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

const schoolInfoID = 1

type SchoolInfo struct {
	ID uint `gorm:"primaryKey"`

	Name    string
	LogoURL string

	UpdatedAt time.Time
}

type SchoolInfoDAO struct {
	db *gorm.DB
}

func NewSchoolInfoDAO(db *gorm.DB) *SchoolInfoDAO {
	return &SchoolInfoDAO{
		db: db,
	}
}

// Get returns the singleton record, or a zero record when none has been
// saved yet. The landing page renders fine with empty school info.
func (d *SchoolInfoDAO) Get(ctx context.Context) (SchoolInfo, error) {
	var info SchoolInfo

	err := d.db.WithContext(ctx).First(&info, schoolInfoID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SchoolInfo{ID: schoolInfoID}, nil
		}

		return SchoolInfo{}, err
	}

	return info, nil
}

func (d *SchoolInfoDAO) Upsert(ctx context.Context, fields map[string]interface{}) (SchoolInfo, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&SchoolInfo{}).Where("id = ?", schoolInfoID).Updates(fields)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			info := SchoolInfo{ID: schoolInfoID}
			if name, ok := fields["name"].(string); ok {
				info.Name = name
			}
			if logoURL, ok := fields["logo_url"].(string); ok {
				info.LogoURL = logoURL
			}

			return tx.Create(&info).Error
		}

		return nil
	})
	if err != nil {
		return SchoolInfo{}, err
	}

	return d.Get(ctx)
}
