package storage

import "github.com/tteslee/fundamental/internal"

func NewFileRepositories(recordsFile, usersFile string, logger internal.Logger) (RecordRepository, UserRepository, error) {
	storage, err := NewFileStorage(recordsFile, usersFile, logger)
	if err != nil {
		return nil, nil, err
	}
	return storage, storage, nil
}

func NewPostgresRepositories(dsn string, logger internal.Logger) (RecordRepository, UserRepository, error) {
	storage, err := NewPostgresStorage(dsn, logger)
	if err != nil {
		return nil, nil, err
	}
	return storage, storage, nil
}
