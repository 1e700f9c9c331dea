package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/haguru/shashin/config"
	"github.com/haguru/shashin/internal/interfaces"

	"github.com/google/uuid"
	"github.com/lib/pq" // PostgreSQL driver for database/sql
)

const (
	// DefaultMaxOpenConns is the default maximum number of open connections to the database.
	DefaultMaxOpenConns = 10
	// DefaultMaxIdleConns is the default maximum number of idle connections to the database.
	DefaultMaxIdleConns = 5
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused.
	DefaultConnMaxLifetime = 30 * time.Second

	// UniqueViolation is the SQLSTATE raised on a unique constraint conflict.
	UniqueViolation = "23505"
)

// ErrNoRows is wrapped by FindOne when nothing matches the filter.
var ErrNoRows = errors.New("no rows found")

var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

type txKey struct{}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// PostgresDatabaseClient implements the DBClient interface for PostgreSQL databases.
type PostgresDatabaseClient struct {
	db              *sql.DB
	MaxOpenConns    int           // MaxOpenConns is the maximum number of open connections to the database
	MaxIdleConns    int           // MaxIdleConns is the maximum number of idle connections to the database
	ConnMaxLifetime time.Duration // ConnMaxLifetime is the maximum amount of time a connection may be reused
	logger          interfaces.Logger
}

// NewPostgresDatabaseClient builds a client from the pool settings, zero values fall back to the defaults.
func NewPostgresDatabaseClient(opts config.PostgresServerOptions, logger interfaces.Logger) *PostgresDatabaseClient {
	client := &PostgresDatabaseClient{
		MaxOpenConns:    opts.MaxOpenConns,
		MaxIdleConns:    opts.MaxIdleConns,
		ConnMaxLifetime: opts.ConnMaxLifetime,
		logger:          logger,
	}
	if client.MaxOpenConns <= 0 {
		client.MaxOpenConns = DefaultMaxOpenConns
	}
	if client.MaxIdleConns <= 0 {
		client.MaxIdleConns = DefaultMaxIdleConns
	}
	if client.ConnMaxLifetime <= 0 {
		client.ConnMaxLifetime = DefaultConnMaxLifetime
	}
	return client
}

// Connect establishes a connection to a PostgreSQL database.
func (p *PostgresDatabaseClient) Connect(ctx context.Context, dsn string) error {
	if dsn == "" {
		return fmt.Errorf("PostgresDatabaseClient: DSN is empty")
	}

	var err error
	p.db, err = sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to open PostgreSQL database: %w", err)
	}

	p.db.SetMaxOpenConns(p.MaxOpenConns)
	p.db.SetMaxIdleConns(p.MaxIdleConns)
	p.db.SetConnMaxLifetime(p.ConnMaxLifetime)

	if err := p.Ping(ctx); err != nil {
		return fmt.Errorf("failed to reach PostgreSQL server: %w", err)
	}
	p.logger.Info("PostgresDatabaseClient: Connected to PostgreSQL server successfully")
	return nil
}

// UseDB attaches an already opened database handle, the pool settings are left to the caller.
func (p *PostgresDatabaseClient) UseDB(db *sql.DB) {
	p.db = db
}

// Disconnect closes the PostgreSQL database connection.
func (p *PostgresDatabaseClient) Disconnect(ctx context.Context) error {
	p.logger.Info("PostgresDatabaseClient: Disconnecting")
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

// InsertOne inserts a single document into a PostgreSQL table.
// 'document' is expected to be a map[string]interface{}, slices are stored as arrays.
// A UUID is generated for 'id' when the document has none.
func (p *PostgresDatabaseClient) InsertOne(ctx context.Context, tableName string, document interfaces.Document) (interface{}, error) {
	docMap, ok := document.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("PostgreSQL InsertOne expects document to be map[string]interface{}")
	}

	row := make(map[string]interface{}, len(docMap)+1)
	for col, val := range docMap {
		row[col] = val
	}
	if _, exists := row["id"]; !exists {
		row["id"] = uuid.New().String()
	}

	columns := sortedKeys(row)
	if err := validateIdentifiers(append([]string{tableName}, columns...)...); err != nil {
		return nil, err
	}

	placeholders := make([]string, 0, len(columns))
	values := make([]interface{}, 0, len(columns))
	for i, col := range columns {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		values = append(values, arrayValue(row[col]))
	}

	//This is a safe use of fmt.Sprintf for SQL query construction, identifiers are validated above.
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		tableName,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	) // #nosec G201

	var insertedID string
	if err := p.conn(ctx).QueryRowContext(ctx, query, values...).Scan(&insertedID); err != nil {
		return nil, err
	}
	return insertedID, nil
}

// FindOne retrieves a single row from a PostgreSQL table into a struct.
// 'filter' is expected to be a map[string]interface{} for the WHERE clause.
// 'result' must point to a struct, columns come from its `db` tags.
// Returns an error wrapping ErrNoRows when nothing matches.
func (p *PostgresDatabaseClient) FindOne(ctx context.Context, tableName string, filter interfaces.Document, result interfaces.Document) error {
	filterMap, ok := filter.(map[string]interface{})
	if !ok {
		return fmt.Errorf("PostgreSQL FindOne expects filter to be map[string]interface{}")
	}
	if len(filterMap) == 0 {
		return fmt.Errorf("PostgreSQL FindOne requires a non-empty filter")
	}

	columns, fieldPointers, err := ScanTargets(result)
	if err != nil {
		return err
	}

	whereString, whereValues, err := whereClause(filterMap, 1)
	if err != nil {
		return err
	}
	if err := validateIdentifiers(append([]string{tableName}, columns...)...); err != nil {
		return err
	}

	//This is a safe use of fmt.Sprintf for SQL query construction, identifiers are validated above.
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s LIMIT 1",
		strings.Join(columns, ", "),
		tableName,
		whereString,
	) // #nosec G201

	err = p.conn(ctx).QueryRowContext(ctx, query, whereValues...).Scan(fieldPointers...)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("PostgreSQL find one in %s: %w", tableName, ErrNoRows)
	}
	return err
}

// UpdateOne updates the rows matching the filter in a PostgreSQL table.
// 'filter' and 'update' are expected to be map[string]interface{}.
// Returns the number of affected rows.
func (p *PostgresDatabaseClient) UpdateOne(ctx context.Context, tableName string, filter interfaces.Document, update interfaces.Document) (int64, error) {
	filterMap, ok := filter.(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("PostgreSQL UpdateOne expects filter to be map[string]interface{}")
	}
	updateMap, ok := update.(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("PostgreSQL UpdateOne expects update to be map[string]interface{}")
	}
	if len(filterMap) == 0 || len(updateMap) == 0 {
		return 0, fmt.Errorf("PostgreSQL UpdateOne requires a non-empty filter and update")
	}

	setColumns := sortedKeys(updateMap)
	if err := validateIdentifiers(append([]string{tableName}, setColumns...)...); err != nil {
		return 0, err
	}

	setClauses := make([]string, 0, len(setColumns))
	values := make([]interface{}, 0, len(updateMap)+len(filterMap))
	for i, col := range setColumns {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i+1))
		values = append(values, arrayValue(updateMap[col]))
	}

	whereString, whereValues, err := whereClause(filterMap, len(setColumns)+1)
	if err != nil {
		return 0, err
	}
	values = append(values, whereValues...)

	//This is a safe use of fmt.Sprintf for SQL query construction, identifiers are validated above.
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		tableName,
		strings.Join(setClauses, ", "),
		whereString,
	) // #nosec G201

	return p.ExecContext(ctx, query, values...)
}

// DeleteOne deletes the rows matching the filter from a PostgreSQL table.
// 'filter' is expected to be a map[string]interface{}.
func (p *PostgresDatabaseClient) DeleteOne(ctx context.Context, tableName string, filter interfaces.Document) (int64, error) {
	filterMap, ok := filter.(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("PostgreSQL DeleteOne expects filter to be map[string]interface{}")
	}
	if len(filterMap) == 0 {
		return 0, fmt.Errorf("PostgreSQL DeleteOne requires a non-empty filter")
	}
	if err := validateIdentifiers(tableName); err != nil {
		return 0, err
	}

	whereString, whereValues, err := whereClause(filterMap, 1)
	if err != nil {
		return 0, err
	}

	//This is a safe use of fmt.Sprintf for SQL query construction, identifiers are validated above.
	query := fmt.Sprintf("DELETE FROM %s WHERE %s", tableName, whereString) // #nosec G201

	return p.ExecContext(ctx, query, whereValues...)
}

// ExecContext runs a statement and returns the number of affected rows.
// Inside WithTransaction it runs on the transaction.
func (p *PostgresDatabaseClient) ExecContext(ctx context.Context, query string, args ...interface{}) (int64, error) {
	res, err := p.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return rowsAffected, nil
}

// QueryContext runs a query returning rows, the caller closes them.
func (p *PostgresDatabaseClient) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return p.conn(ctx).QueryContext(ctx, query, args...)
}

// QueryRowContext runs a query expected to return at most one row.
func (p *PostgresDatabaseClient) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return p.conn(ctx).QueryRowContext(ctx, query, args...)
}

// WithTransaction runs fn in a transaction, committing when fn returns nil and rolling back otherwise.
// Statements issued through the client with the ctx passed to fn join the transaction.
func (p *PostgresDatabaseClient) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if p.db == nil {
		return fmt.Errorf("PostgresDatabaseClient is not connected to a database")
	}
	if _, nested := ctx.Value(txKey{}).(*sql.Tx); nested {
		return fn(ctx)
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			p.logger.Error("PostgresDatabaseClient: Rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Ping checks the health of the PostgreSQL connection.
func (p *PostgresDatabaseClient) Ping(ctx context.Context) error {
	if p.db == nil {
		return fmt.Errorf("PostgresDatabaseClient is not connected to a database")
	}
	return p.db.PingContext(ctx)
}

// EnsureSchema executes the DDL for a table.
// schema must be a string holding CREATE TABLE / CREATE INDEX statements.
func (p *PostgresDatabaseClient) EnsureSchema(ctx context.Context, tableName string, schema interfaces.Document) error {
	if p.db == nil {
		return fmt.Errorf("PostgresDatabaseClient is not connected to a database")
	}

	createStmt, ok := schema.(string)
	if !ok || createStmt == "" {
		return fmt.Errorf("EnsureSchema expects schema to be a CREATE TABLE statement string")
	}

	p.logger.Debug("PostgresDatabaseClient: Ensuring schema", "table", tableName)
	if _, err := p.db.ExecContext(ctx, createStmt); err != nil {
		return fmt.Errorf("failed to ensure schema for %s: %w", tableName, err)
	}
	return nil
}

// IsUniqueViolation reports whether err is a unique constraint conflict.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == UniqueViolation
}

// ScanTargets returns the columns and scan destinations for a pointer to a struct.
// Columns come from `db` tags, untagged fields are skipped and string slices are scanned as arrays.
func ScanTargets(result interfaces.Document) ([]string, []interface{}, error) {
	resultValue := reflect.ValueOf(result)
	if resultValue.Kind() != reflect.Ptr || resultValue.Elem().Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("result must be a pointer to a struct")
	}
	elem := resultValue.Elem()
	elemType := elem.Type()

	columns := make([]string, 0, elem.NumField())
	fieldPointers := make([]interface{}, 0, elem.NumField())
	for i := 0; i < elem.NumField(); i++ {
		column := elemType.Field(i).Tag.Get("db")
		if column == "" || column == "-" {
			continue
		}
		columns = append(columns, column)

		ptr := elem.Field(i).Addr().Interface()
		if elem.Field(i).Kind() == reflect.Slice {
			ptr = pq.Array(ptr)
		}
		fieldPointers = append(fieldPointers, ptr)
	}

	if len(columns) == 0 {
		return nil, nil, fmt.Errorf("result struct %s has no db tags", elemType.Name())
	}
	return columns, fieldPointers, nil
}

func (p *PostgresDatabaseClient) conn(ctx context.Context) execer {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return p.db
}

// whereClause builds "col = $n AND ..." in column order starting at placeholder start.
func whereClause(filterMap map[string]interface{}, start int) (string, []interface{}, error) {
	columns := sortedKeys(filterMap)
	if err := validateIdentifiers(columns...); err != nil {
		return "", nil, err
	}

	clauses := make([]string, 0, len(columns))
	values := make([]interface{}, 0, len(columns))
	for i, col := range columns {
		clauses = append(clauses, fmt.Sprintf("%s = $%d", col, start+i))
		values = append(values, filterMap[col])
	}
	return strings.Join(clauses, " AND "), values, nil
}

func validateIdentifiers(names ...string) error {
	for _, name := range names {
		if !identifierPattern.MatchString(name) {
			return fmt.Errorf("invalid SQL identifier: %q", name)
		}
	}
	return nil
}

func arrayValue(val interface{}) interface{} {
	if s, ok := val.([]string); ok {
		return pq.Array(s)
	}
	return val
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var _ interfaces.DBClient = (*PostgresDatabaseClient)(nil)
