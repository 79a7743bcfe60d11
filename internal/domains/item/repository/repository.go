package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"shareit/infras/otel"
	"shareit/infras/postgres"
	"shareit/internal/domains/item/model"
	gDto "shareit/shared/dto"
	gRepo "shareit/shared/repository"
)

// Item reads the items table. Item management lives outside this service.
type Item interface {
	Get(ctx context.Context, filter gDto.FilterGroup) (model.Item, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Item, error)
}

var table = gRepo.Table{
	Entity: model.EntityName,
	Name:   model.TableName,
	Key:    model.FieldID,
}

type repositoryImpl struct {
	gRepo.Repository[model.Item]
}

func New(db *postgres.Connection, otel otel.Otel) Item {
	return &repositoryImpl{
		Repository: gRepo.New[model.Item](table, db, otel),
	}
}

func FilterByOwner(ownerID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []gDto.Clause{
			gDto.Filter{
				Field:    model.FieldOwnerID,
				Operator: gDto.FilterOperatorEq,
				Value:    ownerID,
				Table:    model.TableName,
			},
		},
	}
}
