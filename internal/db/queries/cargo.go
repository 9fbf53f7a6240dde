package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cargo-service/internal/db"
	"cargo-service/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Ошибки хранилища отправок
var (
	ErrCargoNotFound = errors.New("cargo not found")
	ErrDuplicateAWB  = errors.New("cargo with this awb number already exists")
)

// uniqueViolation - код ошибки PostgreSQL при нарушении уникальности
const uniqueViolation = "23505"

var cargoColumns = []string{
	"id", "awb_number", "origin", "destination", "weight", "pieces", "shipper",
	"consignee", "special_handling", "status", "description", "deadline", "created_at",
}

// CargoQueriesInterface определяет интерфейс для запросов к отправкам
type CargoQueriesInterface interface {
	CreateCargo(ctx context.Context, cargo *models.Cargo) (*models.Cargo, error)
	GetCargoList(ctx context.Context, filter models.CargoFilter) ([]models.Cargo, error)
	GetCargoByAWB(ctx context.Context, awbNumber string) (*models.Cargo, error)
	UpdateCargo(ctx context.Context, awbNumber string, update *models.CargoUpdate) (*models.Cargo, error)
	CountCargo(ctx context.Context) (int, error)
}

// CargoQueries содержит методы запросов для работы с отправками
type CargoQueries struct {
	db  *db.Database
	sq  squirrel.StatementBuilderType
	now func() time.Time
}

// NewCargoQueries создает новый экземпляр CargoQueries
func NewCargoQueries(db *db.Database) *CargoQueries {
	return &CargoQueries{
		db:  db,
		sq:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).RunWith(db),
		now: time.Now,
	}
}

// CreateCargo сохраняет новую отправку.
// Время создания хранится с точностью до миллисекунд в UTC.
func (q *CargoQueries) CreateCargo(ctx context.Context, cargo *models.Cargo) (*models.Cargo, error) {
	if verr := cargo.Validate(); verr != nil {
		return nil, verr
	}

	id := uuid.New().String()
	createdAt := cargo.Timestamp
	if createdAt.IsZero() {
		createdAt = q.now()
	}
	createdAt = createdAt.UTC().Truncate(time.Millisecond)

	specialHandling := cargo.SpecialHandling
	if specialHandling == nil {
		specialHandling = pq.StringArray{}
	}

	query := q.sq.
		Insert("cargo").
		Columns(cargoColumns...).
		Values(
			id, cargo.AWBNumber, cargo.Origin, cargo.Destination, cargo.Weight, cargo.Pieces,
			cargo.Shipper, cargo.Consignee, specialHandling, string(cargo.Status),
			cargo.Description, truncateDeadline(cargo.Deadline), createdAt,
		).
		Suffix("RETURNING " + strings.Join(cargoColumns, ", "))

	qsql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var created models.Cargo
	err = q.db.QueryRowxContext(ctx, qsql, args...).StructScan(&created)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateAWB
		}
		return nil, fmt.Errorf("failed to create cargo: %w", err)
	}

	toUTC(&created)
	return &created, nil
}

// GetCargoList получает отправки, подходящие под фильтр.
// Пустой фильтр возвращает всю коллекцию.
func (q *CargoQueries) GetCargoList(ctx context.Context, filter models.CargoFilter) ([]models.Cargo, error) {
	queryBuilder := q.sq.
		Select(cargoColumns...).
		From("cargo")

	if filter.Status != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"status": string(filter.Status)})
	}
	if filter.Origin != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"origin": filter.Origin})
	}
	if filter.Destination != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"destination": filter.Destination})
	}
	if filter.SpecialHandling != "" {
		queryBuilder = queryBuilder.Where(squirrel.Expr("? = ANY(special_handling)", filter.SpecialHandling))
	}

	qsql, args, err := queryBuilder.OrderBy("created_at ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	cargoList := []models.Cargo{}
	err = q.db.SelectContext(ctx, &cargoList, qsql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get cargo list: %w", err)
	}

	for i := range cargoList {
		toUTC(&cargoList[i])
	}

	return cargoList, nil
}

// GetCargoByAWB получает отправку по номеру AWB
func (q *CargoQueries) GetCargoByAWB(ctx context.Context, awbNumber string) (*models.Cargo, error) {
	query := q.sq.
		Select(cargoColumns...).
		From("cargo").
		Where(squirrel.Eq{"awb_number": awbNumber}).
		Limit(1)

	qsql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var cargo models.Cargo
	err = q.db.QueryRowxContext(ctx, qsql, args...).StructScan(&cargo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCargoNotFound
		}
		return nil, fmt.Errorf("failed to get cargo: %w", err)
	}

	toUTC(&cargo)
	return &cargo, nil
}

// UpdateCargo применяет частичное обновление одной командой UPDATE.
// Переданные поля проверяются повторно, пустое обновление возвращает текущую запись.
func (q *CargoQueries) UpdateCargo(ctx context.Context, awbNumber string, update *models.CargoUpdate) (*models.Cargo, error) {
	if update == nil || update.IsEmpty() {
		return q.GetCargoByAWB(ctx, awbNumber)
	}

	if verr := update.Validate(); verr != nil {
		return nil, verr
	}

	query := q.sq.
		Update("cargo").
		SetMap(updateSetMap(update)).
		Where(squirrel.Eq{"awb_number": awbNumber}).
		Suffix("RETURNING " + strings.Join(cargoColumns, ", "))

	qsql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var cargo models.Cargo
	err = q.db.QueryRowxContext(ctx, qsql, args...).StructScan(&cargo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCargoNotFound
		}
		return nil, fmt.Errorf("failed to update cargo: %w", err)
	}

	toUTC(&cargo)
	return &cargo, nil
}

// CountCargo возвращает количество сохраненных отправок
func (q *CargoQueries) CountCargo(ctx context.Context) (int, error) {
	qsql, args, err := q.sq.Select("COUNT(*)").From("cargo").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int
	err = q.db.QueryRowContext(ctx, qsql, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count cargo: %w", err)
	}

	return total, nil
}

// updateSetMap переводит проверенное обновление в набор колонок
func updateSetMap(update *models.CargoUpdate) map[string]interface{} {
	setMap := make(map[string]interface{})

	if update.Origin != nil {
		setMap["origin"] = *update.Origin
	}
	if update.Destination != nil {
		setMap["destination"] = *update.Destination
	}
	if update.Weight != nil {
		setMap["weight"] = *update.Weight
	}
	if update.Pieces != nil {
		setMap["pieces"] = *update.Pieces
	}
	if update.Shipper != nil {
		setMap["shipper"] = *update.Shipper
	}
	if update.Consignee != nil {
		setMap["consignee"] = *update.Consignee
	}
	if update.SpecialHandling != nil {
		setMap["special_handling"] = pq.StringArray(update.SpecialHandling)
	}
	if update.Status != nil {
		setMap["status"] = string(*update.Status)
	}
	if update.Description != nil {
		setMap["description"] = *update.Description
	}
	if update.Deadline != nil {
		setMap["deadline"] = truncateDeadline(update.Deadline)
	} else if update.ClearDeadline {
		setMap["deadline"] = nil
	}

	return setMap
}

func truncateDeadline(deadline *time.Time) *time.Time {
	if deadline == nil {
		return nil
	}
	truncated := deadline.UTC().Truncate(time.Millisecond)
	return &truncated
}

// toUTC приводит время записи к UTC независимо от часового пояса соединения
func toUTC(cargo *models.Cargo) {
	cargo.Timestamp = cargo.Timestamp.UTC()
	if cargo.Deadline != nil {
		deadline := cargo.Deadline.UTC()
		cargo.Deadline = &deadline
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
