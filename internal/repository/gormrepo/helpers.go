package gormrepo

import (
	"errors"

	"github.com/dom/petshop-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// duplicate maps a unique index violation onto taken. Requires a connection
// opened with TranslateError.
func duplicate(err error, taken error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return taken
	}
	return err
}

// paginate counts the rows matched by query and loads the requested page
// into dest, preloading the named associations on the page only. Sort
// columns must already be validated by the caller.
func paginate(query *gorm.DB, params domain.ListParams, dest any, preloads ...string) (int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, err
	}

	if params.SortBy != "" {
		query = query.Order(clause.OrderByColumn{
			Column: clause.Column{Name: params.SortBy},
			Desc:   params.Desc,
		})
	}
	query = query.Order("id ASC")
	for _, assoc := range preloads {
		query = query.Preload(assoc)
	}

	err := query.
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(dest).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
