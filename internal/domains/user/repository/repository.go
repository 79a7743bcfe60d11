package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"shareit/infras/otel"
	"shareit/infras/postgres"
	"shareit/internal/domains/user/model"
	gDto "shareit/shared/dto"
	gRepo "shareit/shared/repository"
)

// User reads the users table. Users are created outside this service.
type User interface {
	Get(ctx context.Context, filter gDto.FilterGroup) (model.User, error)
}

var table = gRepo.Table{
	Entity: model.EntityName,
	Name:   model.TableName,
	Key:    model.FieldID,
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.New[model.User](table, db, otel),
	}
}
