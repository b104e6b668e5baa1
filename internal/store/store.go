package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/cleared-dev/txnapi/internal/model"
)

// ErrDuplicate is returned by Insert when the transaction ID already exists.
var ErrDuplicate = errors.New("transaction already exists")

// transactionRow is the persisted shape of a model.Transaction.
type transactionRow struct {
	TransactionID int             `gorm:"column:transaction_id;primaryKey;autoIncrement:false"`
	ClientName    string          `gorm:"column:client_name;not null"`
	ClientFolded  string          `gorm:"column:client_name_folded;not null;default:''"`
	Status        string          `gorm:"column:status;not null;index"`
	Type          string          `gorm:"column:type;not null;index"`
	Amount        decimal.Decimal `gorm:"column:amount;type:text;not null"`
}

func (transactionRow) TableName() string { return "transactions" }

// Store persists transactions in a SQLite database.
type Store struct {
	db *gorm.DB
}

// Open connects to the SQLite database at path, creating and migrating it
// as needed.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, &model.DataAccessError{Op: "connecting to database", Err: err}
	}
	if err := db.AutoMigrate(&transactionRow{}); err != nil {
		return nil, &model.DataAccessError{Op: "migrating schema", Err: err}
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetByID returns the transaction with the given ID. The bool is false when
// no row matches; that is not an error.
func (s *Store) GetByID(ctx context.Context, id int) (model.Transaction, bool, error) {
	var rows []transactionRow
	err := s.db.WithContext(ctx).
		Where("transaction_id = ?", id).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return model.Transaction{}, false, opError(fmt.Sprintf("getting transaction %d", id), err)
	}
	if len(rows) == 0 {
		return model.Transaction{}, false, nil
	}

	t, err := fromRow(rows[0])
	if err != nil {
		return model.Transaction{}, false, opError(fmt.Sprintf("getting transaction %d", id), err)
	}
	return t, true, nil
}

// Upsert inserts t when its ID is new. When the ID exists only the stored
// status is overwritten; client name, type and amount keep their first
// imported values. The whole operation is one statement.
func (s *Store) Upsert(ctx context.Context, t model.Transaction) error {
	op := fmt.Sprintf("upserting transaction %d", t.ID)
	row, err := toRow(t)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "transaction_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status"}),
		}).
		Create(&row).Error
	if err != nil {
		return opError(op, err)
	}
	return nil
}

// Insert stores a new transaction. It returns an error wrapping ErrDuplicate
// when the ID is taken.
func (s *Store) Insert(ctx context.Context, t model.Transaction) error {
	op := fmt.Sprintf("inserting transaction %d", t.ID)
	row, err := toRow(t)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = s.db.WithContext(ctx).Create(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}
	if err != nil {
		return opError(op, err)
	}
	return nil
}

// UpdateStatus sets the status of an existing transaction and returns the
// updated record. The bool is false when the ID does not exist.
func (s *Store) UpdateStatus(ctx context.Context, id int, status model.Status) (model.Transaction, bool, error) {
	op := fmt.Sprintf("updating status of transaction %d", id)
	v, err := encodeStatus(status)
	if err != nil {
		return model.Transaction{}, false, fmt.Errorf("%s: %w", op, err)
	}

	var updated transactionRow
	found := false
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&transactionRow{}).
			Where("transaction_id = ?", id).
			Update("status", v)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		found = true
		return tx.Where("transaction_id = ?", id).Take(&updated).Error
	})
	if err != nil {
		return model.Transaction{}, false, opError(op, err)
	}
	if !found {
		return model.Transaction{}, false, nil
	}

	t, err := fromRow(updated)
	if err != nil {
		return model.Transaction{}, false, opError(op, err)
	}
	return t, true, nil
}

// QueryByFilter returns every transaction matching all set predicates of f,
// ordered by ID.
func (s *Store) QueryByFilter(ctx context.Context, f model.Filter) ([]model.Transaction, error) {
	pred, err := BuildFilter(f)
	if err != nil {
		return nil, fmt.Errorf("building filter: %w", err)
	}

	q := s.db.WithContext(ctx).Model(&transactionRow{})
	if !pred.Empty() {
		q = q.Where(pred.SQL, pred.Args...)
	}

	var rows []transactionRow
	if err := q.Order("transaction_id").Find(&rows).Error; err != nil {
		return nil, opError("querying transactions", err)
	}

	txns := make([]model.Transaction, 0, len(rows))
	for _, r := range rows {
		t, err := fromRow(r)
		if err != nil {
			return nil, opError("querying transactions", err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}

func opError(op string, err error) error {
	return &model.DataAccessError{Op: op, Err: err}
}

func toRow(t model.Transaction) (transactionRow, error) {
	status, err := encodeStatus(t.Status)
	if err != nil {
		return transactionRow{}, err
	}
	typ, err := encodeType(t.Type)
	if err != nil {
		return transactionRow{}, err
	}
	return transactionRow{
		TransactionID: t.ID,
		ClientName:    t.ClientName,
		ClientFolded:  foldClientName(t.ClientName),
		Status:        status,
		Type:          typ,
		Amount:        t.Amount,
	}, nil
}

func fromRow(r transactionRow) (model.Transaction, error) {
	status, err := decodeStatus(r.Status)
	if err != nil {
		return model.Transaction{}, err
	}
	typ, err := decodeType(r.Type)
	if err != nil {
		return model.Transaction{}, err
	}
	return model.Transaction{
		ID:         r.TransactionID,
		ClientName: r.ClientName,
		Status:     status,
		Type:       typ,
		Amount:     r.Amount,
	}, nil
}
