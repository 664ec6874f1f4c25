package db

import "gorm.io/gorm"

type Repositories struct {
	Ranges *RangeRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Ranges: NewRangeRepository(database),
	}
}
