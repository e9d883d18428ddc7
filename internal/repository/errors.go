package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

var (
	// ErrNotFound: запрошенной строки нет.
	ErrNotFound = errors.New("not found")
	// ErrStore: любая ошибка хранилища (соединение, ограничения и т.п.).
	ErrStore = errors.New("store operation failed")
)

// storeErr оборачивает ошибку pgx: errors.Is работает и для ErrStore, и для исходной причины.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStore) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}

// rowErr: то же, но pgx.ErrNoRows превращается в ErrNotFound.
func rowErr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return storeErr(op, err)
}
