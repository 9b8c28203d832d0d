package storage

import "tarotstats/internal/models"

// UserStat is the server-side counter row of one FID.
type UserStat struct {
	FID             int64  `gorm:"primaryKey;autoIncrement:false"`
	Wallet          string `gorm:"size:64"`
	TotalReadings   int    `gorm:"not null;default:0"`
	OneCardCount    int    `gorm:"not null;default:0"`
	ThreeCardCount  int    `gorm:"not null;default:0"`
	CustomCount     int    `gorm:"not null;default:0"`
	Streak          int    `gorm:"not null;default:0"`
	LastVisitDayKey string `gorm:"size:10"`
	FirstSeenTs     int64  `gorm:"not null"`
	LastSeenTs      int64  `gorm:"not null;index"`
}

func (UserStat) TableName() string {
	return "user_stats"
}

func (u *UserStat) ToRemote() *models.RemoteRecord {
	return &models.RemoteRecord{
		FID:             u.FID,
		Wallet:          u.Wallet,
		TotalReadings:   u.TotalReadings,
		OneCardCount:    u.OneCardCount,
		ThreeCardCount:  u.ThreeCardCount,
		CustomCount:     u.CustomCount,
		Streak:          u.Streak,
		LastVisitDayKey: u.LastVisitDayKey,
		FirstSeenTs:     u.FirstSeenTs,
		LastSeenTs:      u.LastSeenTs,
	}
}

func fromRemote(r *models.RemoteRecord) *UserStat {
	return &UserStat{
		FID:             r.FID,
		Wallet:          r.Wallet,
		TotalReadings:   r.TotalReadings,
		OneCardCount:    r.OneCardCount,
		ThreeCardCount:  r.ThreeCardCount,
		CustomCount:     r.CustomCount,
		Streak:          r.Streak,
		LastVisitDayKey: r.LastVisitDayKey,
		FirstSeenTs:     r.FirstSeenTs,
		LastSeenTs:      r.LastSeenTs,
	}
}
