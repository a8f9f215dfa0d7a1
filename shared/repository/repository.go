package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/logger"

	"github.com/jmoiron/sqlx"
)

// errRequiredFilter guards DELETE, UPDATE and EXISTS against running over a whole table.
var errRequiredFilter = errors.New("required filter")

type column struct {
	name  string
	table string
	alias string
}

// qualified is the column as it appears in SELECT and ORDER BY.
func (c column) qualified() string {
	if c.table == "" {
		return c.name
	}

	return c.table + "." + c.name
}

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

type preparer interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// joiner is implemented by models whose table reads need a JOIN clause.
type joiner interface {
	GetJoinQuery() string
}

// Repository is generic CRUD over one table, driven by the db/table/column tags of T.
// Reads go to the read replica, writes and *Tx variants to the primary.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entitas       string
	primaryColumn string
	columns       []column
	insertColumns []string
	join          string
}

func NewRepository[T any](entitasName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertColumns := getColumns(tableName, reflect.TypeOf(zero))

	var join string
	if j, ok := any(zero).(joiner); ok {
		join = j.GetJoinQuery()
	}

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entitas:       entitasName,
		primaryColumn: primaryColumn,
		columns:       columns,
		insertColumns: insertColumns,
		join:          join,
	}
}

func (repo *Repository[T]) span(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName,
		fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entitas, op))
}

func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entitas, err)
}

// query prepares statement on prep and hands it to read, closing it afterwards.
func (repo *Repository[T]) query(ctx context.Context, scope otel.Scope, prep preparer, statement string, read func(*sqlx.NamedStmt) error) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, statement)

	stmt, err := prep.PrepareNamedContext(ctx, statement)
	if err != nil {
		return repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	return read(stmt)
}

func (repo *Repository[T]) exec(ctx context.Context, scope otel.Scope, exec execer, action, statement string, arg any) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, statement)

	if _, err := exec.NamedExecContext(ctx, statement, arg); err != nil {
		return repo.fail(scope, action, err)
	}

	return nil
}

func (repo *Repository[T]) insertQuery() string {
	binds := make([]string, len(repo.insertColumns))
	for i, col := range repo.insertColumns {
		binds[i] = ":" + col
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		repo.table, strings.Join(repo.insertColumns, ", "), strings.Join(binds, ", "))
}

func (repo *Repository[T]) insert(ctx context.Context, exec execer, op string, model T) error {
	ctx, scope := repo.span(ctx, op)
	defer scope.End()

	return repo.exec(ctx, scope, exec, "insert data", repo.insertQuery(), model)
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.insert(ctx, repo.db.Write, "Insert", model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	return repo.insert(ctx, sqltx, "InsertTx", model)
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (exist bool, err error) {
	ctx, scope := repo.span(ctx, "Exist")
	defer scope.End()

	where, args := repo.whereClause(filter)
	if where == "" {
		return false, errRequiredFilter
	}

	statement := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)

	err = repo.query(ctx, scope, repo.db.Read, statement, func(stmt *sqlx.NamedStmt) error {
		if err := stmt.GetContext(ctx, &exist, args); err != nil {
			return repo.fail(scope, "check exist data", err)
		}

		return nil
	})

	return exist, err
}

// get returns the zero T when no row matches. With lock the row stays locked until the transaction ends.
func (repo *Repository[T]) get(ctx context.Context, prep preparer, op string, filter dto.FilterGroup, lock bool, columns ...string) (model T, err error) {
	ctx, scope := repo.span(ctx, op)
	defer scope.End()

	where, args := repo.whereClause(filter)
	statement := fmt.Sprintf("SELECT %s FROM %s %s %s", repo.selectList(columns...), repo.table, repo.join, where)

	if lock {
		statement += " FOR UPDATE OF " + repo.table
	}

	err = repo.query(ctx, scope, prep, statement, func(stmt *sqlx.NamedStmt) error {
		err := stmt.GetContext(ctx, &model, args)

		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil
		case err != nil:
			return repo.fail(scope, "get data", err)
		}

		return nil
	})

	return model, err
}

func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, repo.db.Read, "Get", filter, false, columns...)
}

// GetTx reads inside sqltx without locking, so it observes the transaction's own writes.
func (repo *Repository[T]) GetTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, sqltx, "GetTx", filter, false, columns...)
}

// GetForUpdateTx reads a row with SELECT ... FOR UPDATE. The lock is held until sqltx ends.
func (repo *Repository[T]) GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, sqltx, "GetForUpdateTx", filter, true, columns...)
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) (models []T, err error) {
	ctx, scope := repo.span(ctx, "GetAll")
	defer scope.End()

	where, args := repo.whereClause(filter)

	var ordering, pagination string

	if sortColumn, ok := repo.sortColumn(params.SortBy); ok && params.SortDir != "" {
		ordering = fmt.Sprintf("ORDER BY %s %s", sortColumn, params.SortDir)
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit
		pagination = "LIMIT :limit"

		if params.Page > 0 {
			args["offset"] = params.Offset()
			pagination += " OFFSET :offset"
		}
	}

	statement := fmt.Sprintf("SELECT %s FROM %s %s %s %s %s",
		repo.selectList(columns...), repo.table, repo.join, where, ordering, pagination)

	err = repo.query(ctx, scope, repo.db.Read, statement, func(stmt *sqlx.NamedStmt) error {
		if err := stmt.SelectContext(ctx, &models, args); err != nil {
			return repo.fail(scope, "get all data", err)
		}

		return nil
	})

	return models, err
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (count int, err error) {
	ctx, scope := repo.span(ctx, "Count")
	defer scope.End()

	where, args := repo.whereClause(filter)
	statement := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s %s", repo.table, repo.primaryColumn, repo.table, repo.join, where)

	err = repo.query(ctx, scope, repo.db.Read, statement, func(stmt *sqlx.NamedStmt) error {
		if err := stmt.GetContext(ctx, &count, args); err != nil {
			return repo.fail(scope, "count data", err)
		}

		return nil
	})

	return count, err
}

func (repo *Repository[T]) delete(ctx context.Context, exec execer, op string, filter dto.FilterGroup) error {
	ctx, scope := repo.span(ctx, op)
	defer scope.End()

	where, args := repo.whereClause(filter)
	if where == "" {
		return errRequiredFilter
	}

	return repo.exec(ctx, scope, exec, "delete data", fmt.Sprintf("DELETE FROM %s %s", repo.table, where), args)
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	return repo.delete(ctx, repo.db.Write, "Delete", filter)
}

func (repo *Repository[T]) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) error {
	return repo.delete(ctx, sqltx, "DeleteTx", filter)
}

// update sets the columns in fields. Columns are emitted in sorted order so the
// statement text is stable for tracing.
func (repo *Repository[T]) update(ctx context.Context, exec execer, op string, fields map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.span(ctx, op)
	defer scope.End()

	where, args := repo.whereClause(filter)
	if where == "" {
		return errRequiredFilter
	}

	assignments := make([]string, 0, len(fields))
	for _, col := range slices.Sorted(maps.Keys(fields)) {
		assignments = append(assignments, fmt.Sprintf("%s = :%s", col, col))
	}

	maps.Copy(args, fields)

	statement := fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(assignments, ", "), where)

	return repo.exec(ctx, scope, exec, "update data", statement, args)
}

func (repo *Repository[T]) Update(ctx context.Context, fields map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, repo.db.Write, "Update", fields, filter)
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, fields map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, sqltx, "UpdateTx", fields, filter)
}

// sortColumn maps a client supplied sort field onto a known column. Anything else is ignored.
func (repo *Repository[T]) sortColumn(sortBy string) (string, bool) {
	if sortBy == "" {
		return "", false
	}

	for _, col := range repo.columns {
		if sortBy == col.name || sortBy == col.alias || sortBy == col.qualified() {
			return col.qualified(), true
		}
	}

	return "", false
}

// selectList renders the SELECT columns, limited to only when given.
func (repo *Repository[T]) selectList(only ...string) string {
	list := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col.name) {
			continue
		}

		rendered := col.qualified()
		if col.alias != "" && col.table != "" {
			rendered += " AS " + col.alias
		}

		list = append(list, rendered)
	}

	return strings.Join(list, ", ")
}

func (repo *Repository[T]) whereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return " WHERE " + where + " ", args
}

// getColumns reads db tags, following embedded structs. A table tag marks a
// joined column (read only); a column tag selects a differently named column
// under the db tag as alias.
func getColumns(table string, reflectType reflect.Type) (columns []column, insertColumns []string) {
	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			nested, nestedInsert := getColumns(table, field.Type)
			columns = append(columns, nested...)
			insertColumns = append(insertColumns, nestedInsert...)
		}

		dbTag := field.Tag.Get("db")
		if dbTag == "" {
			continue
		}

		owner := field.Tag.Get("table")
		if owner == "" {
			owner = table
		}

		if owner == table {
			insertColumns = append(insertColumns, dbTag)
		}

		if name := field.Tag.Get("column"); name != "" {
			columns = append(columns, column{name: name, table: owner, alias: dbTag})
		} else {
			columns = append(columns, column{name: dbTag, table: owner})
		}
	}

	return columns, insertColumns
}
