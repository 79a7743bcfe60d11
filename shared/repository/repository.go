package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"shareit/infras/otel"
	"shareit/infras/postgres"
	"shareit/shared/constant"
	"shareit/shared/dto"
	"shareit/shared/logger"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
)

const (
	argLimit  = "limit"
	argOffset = "offset"
)

var (
	errRequiredFilter = errors.New("required filter")
)

// Table names the relation an entity is stored in and its primary key column.
type Table struct {
	Entity string
	Name   string
	Key    string
}

// Joiner is implemented by models that read columns of other tables.
// Those columns carry a `table` tag and, when renamed, a `column` tag.
type Joiner interface {
	JoinClause() string
}

// Repository runs the common statements of one entity. Reads go to the replica and
// writes to the primary, every statement is traced with its query text.
type Repository[T any] struct {
	db      *postgres.Connection
	otel    otel.Otel
	table   Table
	source  string
	columns string
	insert  string
}

func New[T any](table Table, db *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	selects, inserts := columnsOf(table.Name, reflect.TypeOf(zero))

	source := table.Name
	if joiner, ok := any(zero).(Joiner); ok {
		source = clause(source, joiner.JoinClause())
	}

	placeholders := make([]string, len(inserts))
	for i, col := range inserts {
		placeholders[i] = ":" + col
	}

	return Repository[T]{
		db:      db,
		otel:    otl,
		table:   table,
		source:  source,
		columns: strings.Join(selects, ", "),
		insert: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			table.Name, strings.Join(inserts, ", "), strings.Join(placeholders, ", ")),
	}
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	ctx, scope := repo.trace(ctx, "Insert", repo.insert)
	defer scope.End()

	if _, err := repo.db.Write.NamedExecContext(ctx, repo.insert, model); err != nil {
		return repo.fail(scope, "insert", err)
	}

	return nil
}

// Exist reports whether any row matches filter. An empty filter is refused.
func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	where, args := whereOf(filter)
	if where == "" {
		return false, errRequiredFilter
	}

	query := fmt.Sprintf("SELECT EXISTS(%s)", clause("SELECT 1 FROM", repo.source, where))

	ctx, scope := repo.trace(ctx, "Exist", query)
	defer scope.End()

	var exist bool
	if err := repo.read(ctx, &exist, query, args, repo.db.Read.GetContext); err != nil {
		return false, repo.fail(scope, "check existence of", err)
	}

	return exist, nil
}

// Get returns the first row matching filter, or the zero T when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup) (T, error) {
	where, args := whereOf(filter)
	query := clause("SELECT", repo.columns, "FROM", repo.source, where, "LIMIT 1")

	ctx, scope := repo.trace(ctx, "Get", query)
	defer scope.End()

	var model T

	err := repo.read(ctx, &model, query, args, repo.db.Read.GetContext)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	if err != nil {
		return model, repo.fail(scope, "get", err)
	}

	return model, nil
}

// GetAll lists the rows matching filter. Ties in the sort column are broken by the primary key.
func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup) ([]T, error) {
	where, args := whereOf(filter)

	var ordering, window string

	if params.SortBy != "" && params.SortDir != "" {
		ordering = fmt.Sprintf("ORDER BY %s %s, %s.%s %s", params.SortBy, params.SortDir, repo.table.Name, repo.table.Key, params.SortDir)
	}

	if params.Limit > 0 {
		args[argLimit] = params.Limit
		window = "LIMIT :" + argLimit

		if offset := params.Offset(); offset > 0 {
			args[argOffset] = offset
			window += " OFFSET :" + argOffset
		}
	}

	query := clause("SELECT", repo.columns, "FROM", repo.source, where, ordering, window)

	ctx, scope := repo.trace(ctx, "GetAll", query)
	defer scope.End()

	models := []T{}
	if err := repo.read(ctx, &models, query, args, repo.db.Read.SelectContext); err != nil {
		return nil, repo.fail(scope, "list", err)
	}

	return models, nil
}

// Update sets the given columns on every row matching filter and returns how many changed.
// Filter argument names must not collide with the updated column names.
func (repo *Repository[T]) Update(ctx context.Context, fields map[string]any, filter dto.FilterGroup) (int64, error) {
	where, args := whereOf(filter)
	if where == "" {
		return 0, errRequiredFilter
	}

	assignments := make([]string, 0, len(fields))
	for _, col := range slices.Sorted(maps.Keys(fields)) {
		assignments = append(assignments, fmt.Sprintf("%s = :%s", col, col))
	}

	query := clause("UPDATE", repo.table.Name, "SET", strings.Join(assignments, ", "), where)

	ctx, scope := repo.trace(ctx, "Update", query)
	defer scope.End()

	maps.Copy(args, fields)

	result, err := repo.db.Write.NamedExecContext(ctx, query, args)
	if err != nil {
		return 0, repo.fail(scope, "update", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, repo.fail(scope, "count rows updated on", err)
	}

	return affected, nil
}

type scanFunc func(ctx context.Context, dest any, query string, args ...any) error

// read binds the named arguments for the replica and scans the result into dest.
func (repo *Repository[T]) read(ctx context.Context, dest any, query string, args map[string]any, scan scanFunc) error {
	bound, values, err := sqlx.Named(query, args)
	if err != nil {
		return fmt.Errorf("binding arguments: %w", err)
	}

	return scan(ctx, dest, repo.db.Read.Rebind(bound), values...)
}

func (repo *Repository[T]) trace(ctx context.Context, operation, query string) (context.Context, otel.Scope) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName,
		fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.table.Entity, operation))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	return ctx, scope
}

func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s %s: %w", action, repo.table.Entity, err)
}

func whereOf(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return "WHERE " + where, args
}

// clause joins the non empty parts of a statement with single spaces.
func clause(parts ...string) string {
	return strings.Join(slices.DeleteFunc(parts, func(part string) bool { return part == "" }), " ")
}

// columnsOf walks the db tags of t, embedded structs included. Columns owned by
// another table are selectable but never inserted.
func columnsOf(table string, t reflect.Type) (selects, inserts []string) {
	for i := range t.NumField() {
		field := t.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			s, ins := columnsOf(table, field.Type)
			selects = append(selects, s...)
			inserts = append(inserts, ins...)

			continue
		}

		name := field.Tag.Get("db")
		if name == "" {
			continue
		}

		owner := field.Tag.Get("table")
		if owner == "" || owner == table {
			selects = append(selects, fmt.Sprintf("%s.%s", table, name))
			inserts = append(inserts, name)

			continue
		}

		if source := field.Tag.Get("column"); source != "" {
			selects = append(selects, fmt.Sprintf("%s.%s AS %s", owner, source, name))
		} else {
			selects = append(selects, fmt.Sprintf("%s.%s", owner, name))
		}
	}

	return selects, inserts
}
