package repo

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/skynet2/conveyancing-inbox/pkg/database"
)

// Postgres is a local mirror of dashboard transactions used as the matcher's
// candidate list.
type Postgres struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{
		db: db,
	}
}

type transactionRecord struct {
	ID              string `gorm:"primaryKey"`
	PropertyAddress string
	Address         string
	Postcode        string
	Reference       string
	Stage           string
	AgreedPrice     decimal.Decimal

	BuyerEmail     string
	SellerEmail    string
	SolicitorEmail string
	AgentEmail     string

	BuyerPhone     string
	SellerPhone    string
	SolicitorPhone string
	AgentPhone     string

	Participants []database.Participant `gorm:"serializer:json"`
	UpdatedAt    time.Time
}

func (transactionRecord) TableName() string {
	return "conveyancing_transactions"
}

func (p *Postgres) Migrate() error {
	m := gormigrate.New(p.db, &gormigrate.Options{
		TableName:                 "gorm_migrations",
		IDColumnName:              "id",
		IDColumnSize:              255,
		UseTransaction:            false,
		ValidateUnknownMigrations: false,
	}, getMigrations())

	if err := m.Migrate(); err != nil {
		return errors.Wrap(err, "failed to migrate")
	}

	return nil
}

// ListCandidates returns every mirrored transaction, most recently updated first.
func (p *Postgres) ListCandidates(ctx context.Context) ([]*database.Transaction, error) {
	var records []transactionRecord

	if err := p.db.WithContext(ctx).Order("updated_at desc, id").Find(&records).Error; err != nil {
		return nil, errors.Wrap(err, "failed to fetch transactions")
	}

	return lo.Map(records, func(r transactionRecord, _ int) *database.Transaction {
		return fromRecord(r)
	}), nil
}

// SyncTransactions upserts the given transactions and removes those no longer present.
func (p *Postgres) SyncTransactions(ctx context.Context, transactions []*database.Transaction) error {
	tx := p.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	ids := lo.Map(transactions, func(t *database.Transaction, _ int) string {
		return t.ID
	})

	deleteQuery := tx.Model(&transactionRecord{})
	if len(ids) > 0 {
		deleteQuery = deleteQuery.Where("id not in ?", ids)
	} else {
		deleteQuery = deleteQuery.Where("1 = 1")
	}

	if err := deleteQuery.Delete(&transactionRecord{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete stale transactions")
	}

	for _, t := range transactions {
		record := toRecord(t)

		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&record).Error; err != nil {
			return errors.Wrapf(err, "failed to save transaction %s", t.ID)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}

func toRecord(t *database.Transaction) transactionRecord {
	updatedAt := t.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	return transactionRecord{
		ID:              t.ID,
		PropertyAddress: t.PropertyAddress,
		Address:         t.Address,
		Postcode:        t.Postcode,
		Reference:       t.Reference,
		Stage:           t.Stage,
		AgreedPrice:     t.AgreedPrice,
		BuyerEmail:      t.BuyerEmail,
		SellerEmail:     t.SellerEmail,
		SolicitorEmail:  t.SolicitorEmail,
		AgentEmail:      t.AgentEmail,
		BuyerPhone:      t.BuyerPhone,
		SellerPhone:     t.SellerPhone,
		SolicitorPhone:  t.SolicitorPhone,
		AgentPhone:      t.AgentPhone,
		Participants:    t.Participants,
		UpdatedAt:       updatedAt,
	}
}

func fromRecord(r transactionRecord) *database.Transaction {
	return &database.Transaction{
		ID:              r.ID,
		PropertyAddress: r.PropertyAddress,
		Address:         r.Address,
		Postcode:        r.Postcode,
		Reference:       r.Reference,
		Stage:           r.Stage,
		AgreedPrice:     r.AgreedPrice,
		BuyerEmail:      r.BuyerEmail,
		SellerEmail:     r.SellerEmail,
		SolicitorEmail:  r.SolicitorEmail,
		AgentEmail:      r.AgentEmail,
		BuyerPhone:      r.BuyerPhone,
		SellerPhone:     r.SellerPhone,
		SolicitorPhone:  r.SolicitorPhone,
		AgentPhone:      r.AgentPhone,
		Participants:    r.Participants,
		UpdatedAt:       r.UpdatedAt,
	}
}
