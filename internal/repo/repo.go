package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrEmailTaken = errors.New("email already exists")
	ErrNotFound   = gorm.ErrRecordNotFound
)

type GormRepo struct {
	DB *gorm.DB
}
